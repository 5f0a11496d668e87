package repositories

import (
	"errors"

	"campuskart/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrProductNotFound   = errors.New("product not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// GetByID retrieves a user by their ID.
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(email string) (*models.User, error)

	// Update persists changes to an existing user.
	Update(user *models.User) error
}
