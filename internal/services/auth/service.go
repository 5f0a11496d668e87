// Package auth implements the account lifecycle: registration, email
// verification by one-time code, login and profile updates.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"campuskart/internal/models"
	"campuskart/internal/repositories"
	"campuskart/internal/services/mailer"
	"campuskart/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// OtpTTL is the redemption window of a verification code.
const OtpTTL = time.Hour

// ProfileUpdate carries the incoming profile fields. An empty field retains
// the previously stored value; profile completeness is judged on the
// submitted values alone.
type ProfileUpdate struct {
	Name         string
	HostelType   string
	HostelBlock  string
	MobileNumber string
}

type Service interface {
	// Register creates or overwrites an unverified account, issues a fresh
	// OTP and emails it. The returned token is bound to the user id but does
	// not imply the account is verified.
	Register(name, email, password string) (*models.User, string, error)

	// VerifyOtp redeems a code against the newest unexpired record for the
	// user. On success every outstanding record is purged and the account
	// becomes verified.
	VerifyOtp(userID uint, code string) (*models.User, string, error)

	// Login authenticates a verified account.
	Login(email, password string) (*models.User, string, error)

	// GetUser loads the account behind a session.
	GetUser(userID uint) (*models.User, error)

	// UpdateProfile applies a partial profile update and recomputes
	// completeness from the submitted payload.
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
	otpRepo  repositories.OtpRepository
	mail     mailer.Mailer
}

// NewService creates a new auth service.
func NewService(userRepo repositories.UserRepository, otpRepo repositories.OtpRepository, mail mailer.Mailer) Service {
	return &service{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mail:     mail,
	}
}

func (s *service) Register(name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	existing, err := s.userRepo.GetByEmail(email)
	var user *models.User
	switch {
	case err == nil && existing.IsVerified:
		return nil, "", ErrEmailTaken
	case err == nil:
		// Re-registration before verifying: overwrite in place, same identity.
		existing.Name = name
		existing.Password = string(hashed)
		existing.IsVerified = false
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", err
		}
		user = existing
	case errors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{
			Name:       name,
			Email:      email,
			Password:   string(hashed),
			IsVerified: false,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	code, err := generateOtp()
	if err != nil {
		return nil, "", fmt.Errorf("generating otp: %w", err)
	}
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing otp: %w", err)
	}

	now := time.Now()
	record := &models.OtpVerification{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		CreatedAt: now,
		ExpiresAt: now.Add(OtpTTL),
	}
	if err := s.otpRepo.Create(record); err != nil {
		return nil, "", err
	}

	// Delivery is best-effort: a failed send never fails the registration.
	if err := s.mail.Send(email, "Verify your Email", mailer.VerificationBody(code)); err != nil {
		log.Printf("failed to send verification email to %s: %v", email, err)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) VerifyOtp(userID uint, code string) (*models.User, string, error) {
	if userID == 0 || code == "" {
		return nil, "", ErrMissingFields
	}

	records, err := s.otpRepo.FindByUserID(userID)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrOtpNotFound
	}

	// Only the newest unexpired record counts. A code matching an older
	// record must not verify the account.
	now := time.Now()
	var latest *models.OtpVerification
	for i := range records {
		if records[i].Expired(now) {
			continue
		}
		if latest == nil || records[i].CreatedAt.After(latest.CreatedAt) {
			latest = &records[i]
		}
	}
	if latest == nil {
		return nil, "", ErrOtpExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(latest.CodeHash), []byte(code)); err != nil {
		return nil, "", ErrInvalidOtp
	}

	// The purge is the commit point: a concurrent verification that finds
	// nothing left to delete lost the race and must not report success.
	deleted, err := s.otpRepo.DeleteAllForUser(userID)
	if err != nil {
		return nil, "", err
	}
	if deleted == 0 {
		return nil, "", ErrOtpNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	user.IsVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsVerified {
		return nil, "", ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Completeness is judged on the submitted payload, not the merged
	// record: omitting a field flips it false even if a value is stored.
	user.IsProfileComplete = update.Name != "" &&
		update.HostelType != "" &&
		update.HostelBlock != "" &&
		update.MobileNumber != ""

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.HostelType != "" {
		user.HostelType = update.HostelType
	}
	if update.HostelBlock != "" {
		user.HostelBlock = update.HostelBlock
	}
	if update.MobileNumber != "" {
		user.MobileNumber = update.MobileNumber
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// generateOtp returns a uniform random 4-digit code in [1000, 9999].
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}
