package client

import "time"

type User struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Vendor struct {
	ID         string `json:"id"`
	VendorName string `json:"vendorName"`
	Email      string `json:"email"`
	Status     string `json:"status"`
}

type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Stock          int      `json:"stock"`
	HealthConcerns []string `json:"healthConcerns"`
	VendorID       *string  `json:"vendorId"`
	VendorName     string   `json:"vendorName"`
	IsActive       bool     `json:"isActive"`
}

type NewProduct struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

type CartLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"lineTotal"`
}

type Cart struct {
	Items           []CartLine `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	DiscountedTotal float64    `json:"discountedTotal"`
	DeliveryCharge  float64    `json:"deliveryCharge"`
	Total           float64    `json:"total"`
	TotalItems      int        `json:"totalItems"`
}

type Address struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country,omitempty"`
}

type Checkout struct {
	AddressID       string   `json:"addressId,omitempty"`
	DeliveryAddress *Address `json:"deliveryAddress,omitempty"`
	CouponCode      string   `json:"couponCode,omitempty"`
	OrderNotes      string   `json:"orderNotes,omitempty"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type Order struct {
	ID             string      `json:"id"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Discount       float64     `json:"discount"`
	CouponCode     string      `json:"couponCode"`
	CouponDiscount float64     `json:"couponDiscount"`
	DeliveryCharge float64     `json:"deliveryCharge"`
	TotalPrice     float64     `json:"totalPrice"`
	Status         string      `json:"status"`
	PaymentStatus  string      `json:"paymentStatus"`
}
