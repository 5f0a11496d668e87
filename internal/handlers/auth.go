// Package handlers contains the HTTP handlers for the API.
package handlers

import (
	"errors"
	"log"

	"campuskart/internal/middleware"
	"campuskart/internal/models"
	"campuskart/internal/services/auth"
	"campuskart/internal/utils"
	"campuskart/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates (or overwrites an unverified) account and emails an OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("name", input.Name)
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	user, token, err := h.authService.Register(input.Name, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			return utils.Conflict(c, err.Error())
		default:
			log.Printf("error registering user: %v", err)
			return utils.InternalError(c, "error registering user")
		}
	}

	return utils.Created(c, fiber.Map{
		"id":    user.ID,
		"user":  user,
		"token": token,
	})
}

// VerifyOtp redeems an emailed code and marks the account verified.
func (h *AuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var input struct {
		UserID uint   `json:"userId"`
		Otp    string `json:"otp"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, token, err := h.authService.VerifyOtp(input.UserID, input.Otp)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrOtpNotFound):
			return utils.NotFound(c, err.Error())
		case errors.Is(err, auth.ErrOtpExpired), errors.Is(err, auth.ErrInvalidOtp):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrUserNotFound):
			return utils.NotFound(c, err.Error())
		default:
			log.Printf("error verifying user %d: %v", input.UserID, err)
			return utils.InternalError(c, "error verifying user")
		}
	}

	return utils.Success(c, fiber.Map{
		"message": "user successfully verified",
		"user":    user,
		"token":   token,
		"userId":  user.ID,
	})
}

// Login authenticates a verified account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, token, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return utils.Unauthorized(c, "invalid email or password")
		case errors.Is(err, auth.ErrNotVerified):
			return utils.Forbidden(c, err.Error())
		default:
			log.Printf("error logging in user: %v", err)
			return utils.InternalError(c, "error logging in")
		}
	}

	return utils.Success(c, fiber.Map{
		"id":    user.ID,
		"user":  user,
		"token": token,
	})
}

// GetUser returns the account behind the session token.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.Unauthorized(c, "invalid token")
	}
	return utils.Success(c, user)
}

// UpdateProfile applies a partial profile update.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}

	var input struct {
		Name         string `json:"name"`
		HostelType   string `json:"hostelType"`
		HostelBlock  string `json:"hostelBlock"`
		MobileNumber string `json:"mobileNumber"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	if input.HostelType != "" {
		v.OneOf("hostelType", input.HostelType, models.HostelTypeMale, models.HostelTypeFemale)
	}
	if input.HostelBlock != "" {
		v.HostelBlock("hostelBlock", input.HostelBlock)
	}
	if input.MobileNumber != "" {
		v.Mobile("mobileNumber", input.MobileNumber)
	}
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	user, err := h.authService.UpdateProfile(actor.ID, auth.ProfileUpdate{
		Name:         input.Name,
		HostelType:   input.HostelType,
		HostelBlock:  input.HostelBlock,
		MobileNumber: input.MobileNumber,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return utils.NotFound(c, err.Error())
		}
		log.Printf("error updating profile for user %d: %v", actor.ID, err)
		return utils.InternalError(c, "error updating profile")
	}

	return utils.Success(c, fiber.Map{
		"message": "profile updated successfully",
		"user":    user,
	})
}
