package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultVendorName = "MySanjeevani"

var ProductCategories = []string{
	"allopathy", "homeopathy", "ayurveda", "nutrition", "personal-care",
	"baby-care", "sexual-wellness", "fitness", "oral-care", "hair-care",
	"skin-care", "herbal-teas", "health-devices",
}

type Product struct {
	Base
	Name                 string     `gorm:"not null;index"            json:"name"`
	Description          string     `json:"description"`
	Price                float64    `gorm:"not null"                  json:"price"`
	Discount             float64    `json:"discount"`
	Category             string     `gorm:"not null;index"            json:"category"`
	Brand                string     `json:"brand"`
	Manufacturer         string     `json:"manufacturer"`
	Stock                int        `json:"stock"`
	HealthConcerns       []string   `gorm:"type:text;serializer:json" json:"healthConcerns"`
	Dosage               string     `json:"dosage"`
	Packaging            string     `json:"packaging"`
	ExpiryDate           *time.Time `json:"expiryDate,omitempty"`
	RequiresPrescription bool       `json:"requiresPrescription"`
	Image                string     `json:"image"`
	VendorID             *uuid.UUID `gorm:"type:uuid;index"           json:"vendorId,omitempty"`
	VendorName           string     `json:"vendorName"`
	VendorRating         float64    `json:"vendorRating"`
	Rating               float64    `json:"rating"`
	Reviews              int        `json:"reviews"`
	IsActive             bool       `gorm:"index"                     json:"isActive"`
}

type Review struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	UserName  string    `json:"userName"`
	Rating    int       `gorm:"not null"                 json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Helpful   int       `json:"helpful"`
}

type Wishlist struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product;not null" json:"userId"`
	ProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product;not null" json:"productId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
}
