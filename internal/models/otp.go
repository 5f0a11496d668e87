package models

import "time"

// OtpVerification is one outstanding email verification code for a user.
// A user may hold several rows at once (re-registering before verifying
// creates a new one); verification only ever compares against the newest
// unexpired row and purges all of them on success.
type OtpVerification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CodeHash  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

// Expired reports whether the code can no longer be redeemed at t.
func (o *OtpVerification) Expired(t time.Time) bool {
	return !o.ExpiresAt.After(t)
}
