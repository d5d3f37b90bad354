package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleVendor = "vendor"
)

type User struct {
	Base
	FullName     string `gorm:"not null"             json:"fullName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null;index"       json:"role"`
	IsVerified   bool   `json:"isVerified"`
}

type RefreshToken struct {
	Base
	SubjectID uuid.UUID `gorm:"type:uuid;index;not null" json:"subjectId"`
	Role      string    `gorm:"not null"                 json:"role"`
	Token     string    `gorm:"uniqueIndex;not null"     json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null"     json:"jti"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expiresAt"`
	Revoked   bool      `json:"revoked"`
}

const (
	VendorPending   = "pending"
	VendorVerified  = "verified"
	VendorRejected  = "rejected"
	VendorSuspended = "suspended"
)

var BusinessTypes = []string{"pharmacy", "clinic", "hospital", "lab", "supplier", "other"}

type Vendor struct {
	Base
	VendorName           string        `gorm:"not null"                         json:"vendorName"`
	Email                string        `gorm:"uniqueIndex;not null"             json:"email"`
	PasswordHash         string        `gorm:"not null"                         json:"-"`
	Phone                string        `gorm:"not null"                         json:"phone"`
	BusinessType         string        `gorm:"not null"                         json:"businessType"`
	Description          string        `json:"description"`
	Logo                 string        `json:"logo"`
	Address              PostalAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	RegistrationNumber   string        `json:"registrationNumber"`
	LicenseNumber        string        `json:"licenseNumber"`
	GSTNumber            string        `json:"gstNumber"`
	Status               string        `gorm:"not null;index"                   json:"status"`
	VerifiedAt           *time.Time    `json:"verifiedAt,omitempty"`
	RejectionReason      string        `json:"rejectionReason,omitempty"`
	Rating               float64       `json:"rating"`
	TotalReviews         int           `json:"totalReviews"`
	TotalOrders          int           `json:"totalOrders"`
	Revenue              float64       `json:"revenue"`
	CommissionPercentage float64       `json:"commissionPercentage"`
	IsActive             bool          `json:"isActive"`
}
