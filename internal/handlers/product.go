package handlers

import (
	"errors"
	"io"
	"log"
	"strconv"

	"campuskart/internal/middleware"
	"campuskart/internal/models"
	"campuskart/internal/services/product"
	"campuskart/internal/utils"
	"campuskart/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// maxImageSize bounds uploaded product images.
const maxImageSize = 10 << 20 // 10 MiB

const (
	maxTitleLength       = 100
	maxDescriptionLength = 2000
)

type ProductHandler struct {
	productService product.Service
}

func NewProductHandler(productService product.Service) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns every listing; public, no token required.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.productService.List()
	if err != nil {
		log.Printf("failed to fetch products: %v", err)
		return utils.InternalError(c, "failed to fetch products")
	}
	return utils.Success(c, products)
}

// ListMine returns the authenticated user's listings.
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}

	products, err := h.productService.ListMine(actor.ID)
	if err != nil {
		log.Printf("failed to fetch user products: %v", err)
		return utils.InternalError(c, "failed to fetch user products")
	}
	return utils.Success(c, products)
}

// Create stores a new listing from a multipart form with an optional image.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}

	price, priceErr := strconv.ParseFloat(c.FormValue("price"), 64)
	input := product.CreateInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
		HostelBlock: c.FormValue("hostelBlock"),
		HostelType:  c.FormValue("hostelType"),
	}

	v := validation.New()
	v.Required("title", input.Title)
	v.MaxLength("title", input.Title, maxTitleLength)
	v.Required("description", input.Description)
	v.MaxLength("description", input.Description, maxDescriptionLength)
	v.Required("category", input.Category)
	v.Check(priceErr == nil, "price", "must be a number")
	if priceErr == nil {
		v.NonNegative("price", input.Price)
	}
	if input.Category != "" {
		v.OneOf("category", input.Category,
			models.CategoryFood, models.CategoryBooks, models.CategoryElectronics,
			models.CategoryNotes, models.CategoryOthers)
	}
	if input.HostelType != "" {
		v.OneOf("hostelType", input.HostelType, models.HostelTypeMale, models.HostelTypeFemale)
	}
	if input.HostelBlock != "" {
		v.HostelBlock("hostelBlock", input.HostelBlock)
	}
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	image, err := h.readImage(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.productService.Create(c.Context(), actor, input, image)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrMissingFields):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, product.ErrProfileIncomplete):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, product.ErrUploadFailed):
			return utils.InternalError(c, err.Error())
		default:
			log.Printf("failed to create product: %v", err)
			return utils.InternalError(c, "failed to create product")
		}
	}

	return utils.Created(c, fiber.Map{
		"message": "product created successfully",
		"product": created,
	})
}

// Update applies a whitelisted patch to an owned listing.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}
	productID, err := h.productID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid product id")
	}

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	if patch.Title != nil {
		v.MaxLength("title", *patch.Title, maxTitleLength)
	}
	if patch.Description != nil {
		v.MaxLength("description", *patch.Description, maxDescriptionLength)
	}
	if patch.Price != nil {
		v.NonNegative("price", *patch.Price)
	}
	if patch.Category != nil {
		v.OneOf("category", *patch.Category,
			models.CategoryFood, models.CategoryBooks, models.CategoryElectronics,
			models.CategoryNotes, models.CategoryOthers)
	}
	if patch.HostelType != nil {
		v.OneOf("hostelType", *patch.HostelType, models.HostelTypeMale, models.HostelTypeFemale)
	}
	if patch.HostelBlock != nil {
		v.HostelBlock("hostelBlock", *patch.HostelBlock)
	}
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	updated, err := h.productService.Update(actor.ID, productID, patch)
	if err != nil {
		return h.respondError(c, err, "failed to update product")
	}
	return utils.Success(c, updated)
}

// Delete removes an owned listing.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}
	productID, err := h.productID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid product id")
	}

	if err := h.productService.Delete(actor.ID, productID); err != nil {
		return h.respondError(c, err, "failed to delete product")
	}
	return utils.Success(c, fiber.Map{"message": "product deleted successfully"})
}

// MarkSold flags an owned listing as sold.
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}
	productID, err := h.productID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid product id")
	}

	updated, err := h.productService.MarkSold(actor.ID, productID)
	if err != nil {
		return h.respondError(c, err, "failed to mark product as sold")
	}
	return utils.Success(c, updated)
}

// ToggleSave flips the actor's membership in the savedBy set.
func (h *ProductHandler) ToggleSave(c *fiber.Ctx) error {
	return h.toggle(c, h.productService.ToggleSave, "failed to toggle save")
}

// ToggleLike flips the actor's membership in the likes set.
func (h *ProductHandler) ToggleLike(c *fiber.Ctx) error {
	return h.toggle(c, h.productService.ToggleLike, "failed to toggle like")
}

func (h *ProductHandler) toggle(c *fiber.Ctx, op func(uint, uint) (*models.Product, error), failMsg string) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return utils.Unauthorized(c, "invalid token")
	}
	productID, err := h.productID(c)
	if err != nil {
		return utils.BadRequest(c, "invalid product id")
	}

	updated, err := op(actor.ID, productID)
	if err != nil {
		return h.respondError(c, err, failMsg)
	}
	return utils.Success(c, updated)
}

func (h *ProductHandler) productID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ProductHandler) readImage(c *fiber.Ctx) (*product.ImagePayload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image attached is fine; listings may be text-only.
		return nil, nil
	}
	if fileHeader.Size > maxImageSize {
		return nil, errors.New("image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return nil, errors.New("could not read image")
	}

	return &product.ImagePayload{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

func (h *ProductHandler) respondError(c *fiber.Ctx, err error, failMsg string) error {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, product.ErrNotOwner):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, product.ErrMissingFields):
		return utils.BadRequest(c, err.Error())
	default:
		log.Printf("%s: %v", failMsg, err)
		return utils.InternalError(c, failMsg)
	}
}
