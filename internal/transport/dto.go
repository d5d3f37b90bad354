package transport

import (
	"time"

	"github.com/Skotchmaster/medstore/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VendorRegisterRequest struct {
	VendorName         string                `json:"vendorName"         validate:"required"`
	Email              string                `json:"email"              validate:"required,email"`
	Password           string                `json:"password"           validate:"required,min=6"`
	Phone              string                `json:"phone"              validate:"required"`
	BusinessType       string                `json:"businessType"       validate:"required,oneof=pharmacy clinic hospital lab supplier other"`
	Description        string                `json:"description"`
	Logo               string                `json:"logo"`
	BusinessAddress    *models.PostalAddress `json:"businessAddress"`
	RegistrationNumber string                `json:"registrationNumber"`
	LicenseNumber      string                `json:"licenseNumber"`
	GSTNumber          string                `json:"gstNumber"`
}

type VendorActionRequest struct {
	VendorID        string `json:"vendorId"        validate:"required,uuid"`
	Action          string `json:"action"          validate:"required,oneof=approve reject"`
	RejectionReason string `json:"rejectionReason"`
}

type VendorActiveRequest struct {
	VendorID string `json:"vendorId" validate:"required,uuid"`
	IsActive *bool  `json:"isActive" validate:"required"`
}

type CreateProductRequest struct {
	Name                 string     `json:"name"                 validate:"required"`
	Description          string     `json:"description"`
	Price                float64    `json:"price"                validate:"required,gt=0"`
	Discount             float64    `json:"discount"             validate:"gte=0,lte=100"`
	Category             string     `json:"category"             validate:"required,oneof=allopathy homeopathy ayurveda nutrition personal-care baby-care sexual-wellness fitness oral-care hair-care skin-care herbal-teas health-devices"`
	Brand                string     `json:"brand"`
	Manufacturer         string     `json:"manufacturer"`
	Stock                int        `json:"stock"                validate:"gte=0"`
	HealthConcerns       []string   `json:"healthConcerns"`
	Dosage               string     `json:"dosage"`
	Packaging            string     `json:"packaging"`
	ExpiryDate           *time.Time `json:"expiryDate"`
	RequiresPrescription bool       `json:"requiresPrescription"`
	Image                string     `json:"image"`
	IsActive             *bool      `json:"isActive"`
}

type PatchProductRequest struct {
	Name                 *string    `json:"name"                 validate:"omitempty,min=1"`
	Description          *string    `json:"description"`
	Price                *float64   `json:"price"                validate:"omitempty,gt=0"`
	Discount             *float64   `json:"discount"             validate:"omitempty,gte=0,lte=100"`
	Category             *string    `json:"category"             validate:"omitempty,oneof=allopathy homeopathy ayurveda nutrition personal-care baby-care sexual-wellness fitness oral-care hair-care skin-care herbal-teas health-devices"`
	Brand                *string    `json:"brand"`
	Manufacturer         *string    `json:"manufacturer"`
	Stock                *int       `json:"stock"                validate:"omitempty,gte=0"`
	HealthConcerns       []string   `json:"healthConcerns"`
	Dosage               *string    `json:"dosage"`
	Packaging            *string    `json:"packaging"`
	ExpiryDate           *time.Time `json:"expiryDate"`
	RequiresPrescription *bool      `json:"requiresPrescription"`
	Image                *string    `json:"image"`
	IsActive             *bool      `json:"isActive"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gte=1"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type CartLine struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gte=1"`
}

type ReplaceCartRequest struct {
	Items []CartLine `json:"items" validate:"dive"`
}

type DeliveryAddress struct {
	FullName     string `json:"fullName"     validate:"required"`
	Phone        string `json:"phone"        validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"         validate:"required"`
	State        string `json:"state"        validate:"required"`
	Pincode      string `json:"pincode"      validate:"required"`
	Country      string `json:"country"`
}

func (d DeliveryAddress) Model() models.DeliveryAddress {
	return models.DeliveryAddress{
		FullName:     d.FullName,
		Phone:        d.Phone,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		City:         d.City,
		State:        d.State,
		Pincode:      d.Pincode,
		Country:      d.Country,
	}
}

type CheckoutRequest struct {
	AddressID       string           `json:"addressId"       validate:"omitempty,uuid"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress"`
	CouponCode      string           `json:"couponCode"`
	OrderNotes      string           `json:"orderNotes"      validate:"max=500"`
}

type OrderStatusRequest struct {
	Status        string `json:"status"        validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=pending completed failed"`
}

type CreateOfferRequest struct {
	Code                 string    `json:"code"                 validate:"required"`
	Description          string    `json:"description"`
	DiscountType         string    `json:"discountType"         validate:"required,oneof=percentage fixed"`
	DiscountValue        float64   `json:"discountValue"        validate:"required,gt=0"`
	MinCartValue         float64   `json:"minCartValue"         validate:"gte=0"`
	MaxDiscount          float64   `json:"maxDiscount"          validate:"gte=0"`
	ApplicableCategories []string  `json:"applicableCategories"`
	ValidFrom            time.Time `json:"validFrom"            validate:"required"`
	ValidUntil           time.Time `json:"validUntil"           validate:"required,gtfield=ValidFrom"`
	UsageLimit           int       `json:"usageLimit"           validate:"gte=0"`
	IsActive             *bool     `json:"isActive"`
	TermsAndConditions   string    `json:"termsAndConditions"`
}

type AddressRequest struct {
	Type         string `json:"type"         validate:"omitempty,oneof=home work other"`
	FullName     string `json:"fullName"     validate:"required"`
	Phone        string `json:"phone"        validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"         validate:"required"`
	State        string `json:"state"        validate:"required"`
	Pincode      string `json:"pincode"      validate:"required"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}

type ReviewRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Rating    int    `json:"rating"    validate:"required,min=1,max=5"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

type NotificationRequest struct {
	UserID    string `json:"userId"    validate:"required,uuid"`
	Type      string `json:"type"      validate:"required,oneof=order delivery appointment prescription promotion health-tip"`
	Title     string `json:"title"     validate:"required"`
	Message   string `json:"message"`
	RelatedID string `json:"relatedId" validate:"omitempty,uuid"`
	ActionURL string `json:"actionUrl"`
}

type PrescriptionRequest struct {
	PrescriptionFile string            `json:"prescriptionFile" validate:"required"`
	DoctorName       string            `json:"doctorName"`
	HospitalName     string            `json:"hospitalName"`
	IssueDate        *time.Time        `json:"issueDate"`
	ExpiryDate       *time.Time        `json:"expiryDate"`
	Medicines        []models.Medicine `json:"medicines"`
}

type LabTestRequest struct {
	TestName                  string  `json:"testName"     validate:"required"`
	Description               string  `json:"description"`
	Price                     float64 `json:"price"        validate:"required,gt=0"`
	Category                  string  `json:"category"     validate:"required"`
	ReportTime                string  `json:"reportTime"`
	SampleType                string  `json:"sampleType"`
	Fasting                   bool    `json:"fasting"`
	FastingHours              int     `json:"fastingHours" validate:"gte=0"`
	HomeCollectionAvailable   *bool   `json:"homeCollectionAvailable"`
	CenterCollectionAvailable *bool   `json:"centerCollectionAvailable"`
}

type BookingRequest struct {
	CollectionType string    `json:"collectionType" validate:"required,oneof=home center"`
	CollectionDate time.Time `json:"collectionDate" validate:"required"`
	CollectionTime string    `json:"collectionTime"`
	Address        string    `json:"address"`
	Notes          string    `json:"notes"`
}

type ConsultationRequest struct {
	DoctorName       string    `json:"doctorName"       validate:"required"`
	Specialization   string    `json:"specialization"`
	ConsultationType string    `json:"consultationType" validate:"required,oneof=video audio chat"`
	StartTime        time.Time `json:"startTime"        validate:"required"`
	Duration         int       `json:"duration"         validate:"gte=0"`
	Fees             float64   `json:"fees"             validate:"gte=0"`
	Notes            string    `json:"notes"`
}

type ArticleRequest struct {
	Title                 string   `json:"title"    validate:"required"`
	Content               string   `json:"content"  validate:"required"`
	Summary               string   `json:"summary"`
	Author                string   `json:"author"`
	Category              string   `json:"category" validate:"required,oneof=wellness disease nutrition fitness mental-health parenting senior-care"`
	Tags                  []string `json:"tags"`
	RelatedHealthConcerns []string `json:"relatedHealthConcerns"`
	IsPublished           *bool    `json:"isPublished"`
	ReadTime              int      `json:"readTime" validate:"gte=0"`
}

type HealthConcernRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	PreventionTips []string `json:"preventionTips"`
}
