package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"userId"`
	ProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"productId"`
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Quantity    int       `gorm:"not null;check:quantity > 0"                          json:"quantity"`
}

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type DeliveryAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

type Order struct {
	Base
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"          json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"                json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Discount        float64         `json:"discount"`
	CouponCode      string          `json:"couponCode,omitempty"`
	CouponDiscount  float64         `json:"couponDiscount"`
	DeliveryCharge  float64         `json:"deliveryCharge"`
	TotalPrice      float64         `gorm:"not null"                          json:"totalPrice"`
	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	Status          string          `gorm:"not null;index"                    json:"status"`
	PaymentStatus   string          `gorm:"not null"                          json:"paymentStatus"`
	OrderNotes      string          `json:"orderNotes,omitempty"`
}

type OrderItem struct {
	Base
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"       json:"productId"`
	ProductName string    `gorm:"not null"                 json:"productName"`
	Category    string    `json:"category"`
	Quantity    int       `gorm:"not null"                 json:"quantity"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Total       float64   `gorm:"not null"                 json:"total"`
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Offer struct {
	Base
	Code                 string    `gorm:"uniqueIndex;not null"      json:"code"`
	Description          string    `json:"description"`
	DiscountType         string    `gorm:"not null"                  json:"discountType"`
	DiscountValue        float64   `gorm:"not null"                  json:"discountValue"`
	MinCartValue         float64   `json:"minCartValue"`
	MaxDiscount          float64   `json:"maxDiscount"`
	ApplicableCategories []string  `gorm:"type:text;serializer:json" json:"applicableCategories"`
	ValidFrom            time.Time `gorm:"not null"                  json:"validFrom"`
	ValidUntil           time.Time `gorm:"not null"                  json:"validUntil"`
	UsageLimit           int       `json:"usageLimit"`
	UsedCount            int       `json:"usedCount"`
	IsActive             bool      `json:"isActive"`
	TermsAndConditions   string    `json:"termsAndConditions"`
}

type Address struct {
	Base
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Type         string    `json:"type"`
	FullName     string    `gorm:"not null"                 json:"fullName"`
	Phone        string    `gorm:"not null"                 json:"phone"`
	AddressLine1 string    `gorm:"not null"                 json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `gorm:"not null"                 json:"city"`
	State        string    `gorm:"not null"                 json:"state"`
	Pincode      string    `gorm:"not null"                 json:"pincode"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"isDefault"`
}

func (a Address) Delivery() DeliveryAddress {
	return DeliveryAddress{
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Country:      a.Country,
	}
}
