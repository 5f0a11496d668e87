package auth

import "errors"

// Service errors
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("user not verified, please re-register")
	ErrOtpNotFound        = errors.New("account already verified or does not exist")
	ErrOtpExpired         = errors.New("otp has expired")
	ErrInvalidOtp         = errors.New("invalid otp")
	ErrUserNotFound       = errors.New("user not found")
)
