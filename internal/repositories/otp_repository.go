package repositories

import (
	"campuskart/internal/models"

	"gorm.io/gorm"
)

// OtpRepository defines the interface for OTP verification records.
type OtpRepository interface {
	// Create stores a new verification record.
	Create(otp *models.OtpVerification) error

	// FindByUserID returns all outstanding records for a user, newest first.
	FindByUserID(userID uint) ([]models.OtpVerification, error)

	// DeleteAllForUser removes every record for a user and reports how many
	// rows were deleted. Concurrent verifications race on this delete: only
	// the caller that actually removed rows may report success.
	DeleteAllForUser(userID uint) (int64, error)
}

type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new instance of OtpRepository.
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(otp *models.OtpVerification) error {
	if err := r.db.Create(otp).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *otpRepository) FindByUserID(userID uint) ([]models.OtpVerification, error) {
	var records []models.OtpVerification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return records, nil
}

func (r *otpRepository) DeleteAllForUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.OtpVerification{})
	if result.Error != nil {
		return 0, ErrDatabaseOperation
	}
	return result.RowsAffected, nil
}
