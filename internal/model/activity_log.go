package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityAction names a recorded state change.
type ActivityAction string

const (
	ActionSignup              ActivityAction = "signup"
	ActionLogin               ActivityAction = "login"
	ActionWasteLogged         ActivityAction = "waste_logged"
	ActionCollectionRequested ActivityAction = "collection_requested"
	ActionCollectionCollected ActivityAction = "collection_collected"
	ActionDonationCreated     ActivityAction = "donation_created"
	ActionDonationCollected   ActivityAction = "donation_collected"
)

// ActivityLog is an append-only record of who changed what.
// Records are written asynchronously and never updated.
type ActivityLog struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Action    ActivityAction `json:"action" gorm:"type:varchar(40);not null;index"`
	SubjectID uint           `json:"subject_id,omitempty"`
	Detail    string         `json:"detail,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Activity is one item of a user's recent-activity feed.
type Activity struct {
	Type        string    `json:"type"`
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
