package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload for a session token. Tokens are stateless
// and carry only the user id; holding one does not imply the account is
// verified, callers must still check the user record.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}
