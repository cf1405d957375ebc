package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Quantities are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Waste entry statuses.
const (
	EntryStatusPending           = "Pending"
	EntryStatusPendingCollection = "Pending Collection"
	EntryStatusCollected         = "Collected"
)

// WasteEntry is a logged batch of waste owned by the user who created it.
type WasteEntry struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Category    string          `json:"category" gorm:"size:100;not null;index"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2);not null"`
	ImageURL    *string         `json:"image_url,omitempty" gorm:"size:512"`
	Status      string          `json:"status" gorm:"size:32;not null;default:'Pending';index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
