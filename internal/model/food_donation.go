package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food donation statuses.
const (
	DonationStatusPending   = "Pending"
	DonationStatusCollected = "Collected"
)

// FoodDonation is surplus food offered for pickup.
type FoodDonation struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2);not null"`
	DonorName   string          `json:"donor_name" gorm:"size:100;not null"`
	Contact     string          `json:"contact" gorm:"size:100;not null"`
	Status      string          `json:"status" gorm:"size:32;not null;default:'Pending';index"`
	CollectedBy *string         `json:"collected_by,omitempty" gorm:"size:100;index"`
	CollectedAt *time.Time      `json:"collected_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}
