package models

import (
	"gorm.io/gorm"
)

// Hostel types accepted on profile updates and listings.
const (
	HostelTypeMale   = "Male"
	HostelTypeFemale = "Female"
)

type User struct {
	gorm.Model
	Name              string `gorm:"not null" json:"name"`
	Email             string `gorm:"uniqueIndex;not null" json:"email"`
	Password          string `gorm:"not null" json:"-"`
	HostelType        string `json:"hostelType"`
	HostelBlock       string `json:"hostelBlock"`
	MobileNumber      string `json:"mobileNumber"`
	IsVerified        bool   `gorm:"not null;default:false" json:"isVerified"`
	IsProfileComplete bool   `gorm:"not null;default:false" json:"isProfileComplete"`
}

// PublicUser is the display-safe projection embedded in product listings.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the projection of u exposed to other users.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
