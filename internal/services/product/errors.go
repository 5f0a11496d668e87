package product

import "errors"

// Service errors
var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrProductNotFound   = errors.New("product not found")
	ErrNotOwner          = errors.New("not authorized for this product")
	ErrProfileIncomplete = errors.New("complete your profile before listing")
	ErrUploadFailed      = errors.New("image upload failed")
)
