// Package product implements listings and their like/save interactions.
package product

import (
	"context"
	"errors"
	"log"

	"campuskart/internal/models"
	"campuskart/internal/repositories"
	"campuskart/internal/services/storage"
)

// CreateInput are the fields of a new listing. Seller identity fields are
// snapshotted from the actor's profile at creation time, not submitted.
type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	HostelBlock string
	HostelType  string
}

// ImagePayload is an uploaded image to attach to a new listing.
type ImagePayload struct {
	Data        []byte
	Filename    string
	ContentType string
}

type Service interface {
	// List returns every listing; no authentication required.
	List() ([]models.Product, error)

	// ListMine returns the actor's own listings.
	ListMine(actorID uint) ([]models.Product, error)

	// Create stores a new listing for the actor. The image, when present,
	// is uploaded first; upload failure aborts the creation.
	Create(ctx context.Context, actor *models.User, input CreateInput, image *ImagePayload) (*models.Product, error)

	// Update applies a whitelisted patch to an owned listing.
	Update(actorID, productID uint, patch models.ProductPatch) (*models.Product, error)

	// Delete removes an owned listing.
	Delete(actorID, productID uint) error

	// MarkSold flags an owned listing as sold. Calling it again still
	// succeeds and the flag stays set.
	MarkSold(actorID, productID uint) (*models.Product, error)

	// ToggleSave flips the actor's membership in the savedBy set.
	ToggleSave(actorID, productID uint) (*models.Product, error)

	// ToggleLike flips the actor's membership in the likes set.
	ToggleLike(actorID, productID uint) (*models.Product, error)
}

type service struct {
	productRepo repositories.ProductRepository
	uploader    storage.Uploader
}

// NewService creates a new product service.
func NewService(productRepo repositories.ProductRepository, uploader storage.Uploader) Service {
	return &service{
		productRepo: productRepo,
		uploader:    uploader,
	}
}

func (s *service) List() ([]models.Product, error) {
	return s.productRepo.ListAll()
}

func (s *service) ListMine(actorID uint) ([]models.Product, error) {
	return s.productRepo.ListBySeller(actorID)
}

func (s *service) Create(ctx context.Context, actor *models.User, input CreateInput, image *ImagePayload) (*models.Product, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" || input.Price < 0 {
		return nil, ErrMissingFields
	}
	if !actor.IsProfileComplete {
		return nil, ErrProfileIncomplete
	}

	var imageURL string
	if image != nil {
		url, err := s.uploader.Upload(ctx, image.Data, image.Filename, image.ContentType)
		if err != nil {
			log.Printf("image upload failed for user %d: %v", actor.ID, err)
			return nil, ErrUploadFailed
		}
		imageURL = url
	}

	product := &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		HostelBlock: input.HostelBlock,
		HostelType:  input.HostelType,
		ImageURL:    imageURL,
		SellerID:    actor.ID,
		// Denormalized at creation; later profile edits do not touch
		// existing listings.
		SellerName:   actor.Name,
		SellerMobile: actor.MobileNumber,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	product.Likes = []uint{}
	product.SavedBy = []uint{}
	return product, nil
}

func (s *service) Update(actorID, productID uint, patch models.ProductPatch) (*models.Product, error) {
	product, err := s.getOwned(actorID, productID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.HostelBlock != nil {
		product.HostelBlock = *patch.HostelBlock
	}
	if patch.HostelType != nil {
		product.HostelType = *patch.HostelType
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) Delete(actorID, productID uint) error {
	if _, err := s.getOwned(actorID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(productID)
}

func (s *service) MarkSold(actorID, productID uint) (*models.Product, error) {
	product, err := s.getOwned(actorID, productID)
	if err != nil {
		return nil, err
	}

	product.IsSold = true
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) ToggleSave(actorID, productID uint) (*models.Product, error) {
	if _, err := s.getProduct(productID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.ToggleSave(productID, actorID); err != nil {
		return nil, err
	}
	return s.getProduct(productID)
}

func (s *service) ToggleLike(actorID, productID uint) (*models.Product, error) {
	if _, err := s.getProduct(productID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.ToggleLike(productID, actorID); err != nil {
		return nil, err
	}
	return s.getProduct(productID)
}

func (s *service) getProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// getOwned loads a listing and enforces ownership by stable seller id.
func (s *service) getOwned(actorID, productID uint) (*models.Product, error) {
	product, err := s.getProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != actorID {
		return nil, ErrNotOwner
	}
	return product, nil
}
