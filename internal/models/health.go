package models

import (
	"time"

	"github.com/google/uuid"
)

var NotificationTypes = []string{"order", "delivery", "appointment", "prescription", "promotion", "health-tip"}

type Notification struct {
	Base
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Type      string     `gorm:"not null"                 json:"type"`
	Title     string     `gorm:"not null"                 json:"title"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `gorm:"type:uuid"                json:"relatedId,omitempty"`
	IsRead    bool       `gorm:"index"                    json:"isRead"`
	ActionURL string     `json:"actionUrl,omitempty"`
}

type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type Prescription struct {
	Base
	UserID           uuid.UUID  `gorm:"type:uuid;index;not null"  json:"userId"`
	PrescriptionFile string     `gorm:"not null"                  json:"prescriptionFile"`
	DoctorName       string     `json:"doctorName"`
	HospitalName     string     `json:"hospitalName"`
	IssueDate        *time.Time `json:"issueDate,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	Medicines        []Medicine `gorm:"type:text;serializer:json" json:"medicines"`
	Status           string     `gorm:"not null;index"            json:"status"`
	IsVerified       bool       `json:"isVerified"`
}

var ArticleCategories = []string{"wellness", "disease", "nutrition", "fitness", "mental-health", "parenting", "senior-care"}

type HealthArticle struct {
	Base
	Title                 string   `gorm:"not null"                  json:"title"`
	Slug                  string   `gorm:"uniqueIndex;not null"      json:"slug"`
	Content               string   `gorm:"not null"                  json:"content"`
	Summary               string   `json:"summary"`
	Author                string   `json:"author"`
	Category              string   `gorm:"not null;index"            json:"category"`
	Tags                  []string `gorm:"type:text;serializer:json" json:"tags"`
	RelatedHealthConcerns []string `gorm:"type:text;serializer:json" json:"relatedHealthConcerns"`
	ViewCount             int      `json:"viewCount"`
	Likes                 int      `json:"likes"`
	IsPublished           bool     `gorm:"index"                     json:"isPublished"`
	ReadTime              int      `json:"readTime"`
}

type HealthConcern struct {
	Base
	Name           string   `gorm:"uniqueIndex;not null"      json:"name"`
	Slug           string   `gorm:"uniqueIndex;not null"      json:"slug"`
	Description    string   `json:"description"`
	Symptoms       []string `gorm:"type:text;serializer:json" json:"symptoms"`
	PreventionTips []string `gorm:"type:text;serializer:json" json:"preventionTips"`
}

type LabTest struct {
	Base
	TestName                  string  `gorm:"not null;index" json:"testName"`
	Description               string  `json:"description"`
	Price                     float64 `gorm:"not null"       json:"price"`
	Category                  string  `gorm:"not null;index" json:"category"`
	ReportTime                string  `json:"reportTime"`
	SampleType                string  `json:"sampleType"`
	Fasting                   bool    `json:"fasting"`
	FastingHours              int     `json:"fastingHours"`
	HomeCollectionAvailable   bool    `json:"homeCollectionAvailable"`
	CenterCollectionAvailable bool    `json:"centerCollectionAvailable"`
	Rating                    float64 `json:"rating"`
	Reviews                   int     `json:"reviews"`
	IsActive                  bool    `gorm:"index"          json:"isActive"`
}

type LabTestBooking struct {
	Base
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	LabTestID      uuid.UUID `gorm:"type:uuid;index;not null" json:"labTestId"`
	TestName       string    `json:"testName"`
	Price          float64   `json:"price"`
	CollectionType string    `gorm:"not null"                 json:"collectionType"`
	CollectionDate time.Time `gorm:"not null"                 json:"collectionDate"`
	CollectionTime string    `json:"collectionTime"`
	Address        string    `json:"address"`
	Status         string    `gorm:"not null"                 json:"status"`
	Notes          string    `json:"notes,omitempty"`
}

const (
	ConsultationScheduled  = "scheduled"
	ConsultationInProgress = "in-progress"
	ConsultationCompleted  = "completed"
	ConsultationCancelled  = "cancelled"
)

type DoctorConsultation struct {
	Base
	UserID           uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	DoctorName       string    `gorm:"not null"                 json:"doctorName"`
	Specialization   string    `json:"specialization"`
	ConsultationType string    `gorm:"not null"                 json:"consultationType"`
	StartTime        time.Time `gorm:"not null"                 json:"startTime"`
	Duration         int       `json:"duration"`
	Fees             float64   `gorm:"not null"                 json:"fees"`
	Status           string    `gorm:"not null;index"           json:"status"`
	Notes            string    `json:"notes,omitempty"`
}
