package model

import "time"

// Статусы онбординга партнёра.
const (
	OnboardingDocuments = "pending_documents"
	OnboardingBank      = "pending_bank"
	OnboardingTraining  = "pending_training"
	OnboardingActive    = "active"
)

// Partner — серверная модель партнёра доставки.
type Partner struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Name         string `json:"name"`
	Phone        string `gorm:"not null;uniqueIndex" json:"phone"`
	PasswordHash string `json:"-"`
	VehicleType  string `json:"vehicleType,omitempty"`
	City         string `json:"city,omitempty"`

	IsOnline  bool    `gorm:"not null;default:false" json:"isOnline"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	OnboardingStatus  string  `gorm:"not null" json:"onboardingStatus"`
	TrainingCompleted bool    `gorm:"not null;default:false" json:"trainingCompleted"`
	Rating            float64 `json:"rating,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Document — документ онбординга.
type Document struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	PartnerID string `gorm:"size:36;not null;index" json:"-"`
	Type      string `gorm:"not null" json:"type"`
	Number    string `gorm:"not null" json:"number"`
	URL       string `json:"url,omitempty"`
	Status    string `gorm:"not null" json:"status"`

	Partner *Partner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// BankAccount — реквизиты для выплат, одна запись на партнёра.
type BankAccount struct {
	PartnerID     string `gorm:"primaryKey;size:36" json:"-"`
	AccountHolder string `gorm:"not null" json:"accountHolder"`
	AccountNumber string `gorm:"not null" json:"accountNumber"`
	IFSC          string `gorm:"not null" json:"ifsc"`
	BankName      string `json:"bankName,omitempty"`

	Partner *Partner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
