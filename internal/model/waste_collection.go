package model

import "time"

// Collection request statuses.
const (
	CollectionStatusPending   = "Pending"
	CollectionStatusCollected = "Collected"
)

// WasteCollection is a pickup request for a WasteEntry.
type WasteCollection struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Description   string     `json:"description" gorm:"type:text"`
	Status        string     `json:"status" gorm:"size:32;not null;default:'Pending';index"`
	UserID        uint       `json:"user_id" gorm:"not null;index"`
	WasteEntryID  uint       `json:"waste_entry_id" gorm:"not null;index"`
	CollectorName *string    `json:"collector_name,omitempty" gorm:"size:100;index"`
	PickupDate    *time.Time `json:"pickup_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`

	WasteEntry WasteEntry `json:"-" gorm:"foreignKey:WasteEntryID"`
}

// TableName keeps the singular table name used by existing databases.
func (WasteCollection) TableName() string {
	return "waste_collection"
}

// PendingPickup is a pending collection joined with its entry and requester.
type PendingPickup struct {
	ID           uint      `json:"id"`
	Description  string    `json:"description"`
	WasteEntryID uint      `json:"waste_entry_id"`
	Status       string    `json:"status"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	RequestedBy  string    `json:"requested_by"`
	CreatedAt    time.Time `json:"created_at"`
}
