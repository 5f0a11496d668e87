package models

import (
	"gorm.io/gorm"
)

// Product categories accepted on creation and update.
const (
	CategoryFood        = "Food"
	CategoryBooks       = "Books"
	CategoryElectronics = "Electronics"
	CategoryNotes       = "Notes"
	CategoryOthers      = "Others"
)

type Product struct {
	gorm.Model
	Title        string  `gorm:"not null" json:"title"`
	Description  string  `gorm:"not null" json:"description"`
	Price        float64 `gorm:"not null" json:"price"`
	ImageURL     string  `json:"imageUrl"`
	Category     string  `gorm:"not null" json:"category"`
	HostelBlock  string  `json:"hostelBlock"`
	HostelType   string  `json:"hostelType"`
	SellerID     uint    `gorm:"index;not null" json:"sellerId"`
	Seller       *User   `gorm:"foreignKey:SellerID" json:"-"`
	SellerName   string  `gorm:"not null" json:"sellerName"`
	SellerMobile string  `gorm:"not null" json:"sellerMobile"`
	IsSold       bool    `gorm:"not null;default:false" json:"isSold"`

	// Membership sets, loaded from the join tables on read.
	Likes   []uint `gorm:"-" json:"likes"`
	SavedBy []uint `gorm:"-" json:"savedBy"`

	// Seller projection resolved for the public listing.
	SellerInfo *PublicUser `gorm:"-" json:"seller,omitempty"`
}

// ProductLike is a single row in the likes membership set. The composite
// primary key makes a toggle a one-row insert or delete.
type ProductLike struct {
	ProductID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
}

// ProductSave is a single row in the savedBy membership set.
type ProductSave struct {
	ProductID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
}

// ProductPatch is the whitelist of owner-editable fields. Nil means the
// field is untouched; seller, likes, savedBy and isSold are not reachable
// through an update.
type ProductPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	HostelBlock *string  `json:"hostelBlock"`
	HostelType  *string  `json:"hostelType"`
	ImageURL    *string  `json:"imageUrl"`
}
