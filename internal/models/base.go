package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type PostalAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// All lists every table owned by the service, in migration order.
func All() []any {
	return []any{
		&User{}, &RefreshToken{}, &Vendor{},
		&Product{}, &Review{}, &Wishlist{},
		&CartItem{}, &Offer{}, &Order{}, &OrderItem{}, &Address{},
		&Notification{}, &Prescription{}, &HealthArticle{}, &HealthConcern{},
		&LabTest{}, &LabTestBooking{}, &DoctorConsultation{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
