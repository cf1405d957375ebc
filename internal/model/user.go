package model

import "time"

// Role names accepted at signup and carried in credential tokens.
const (
	RoleAdmin          = "admin"
	RoleRestaurant     = "restaurant"
	RoleWasteCollector = "waste_collector"
	RoleNGO            = "ngo"
	RoleUser           = "user"
)

// Roles lists every role in a stable order.
var Roles = []string{RoleAdmin, RoleRestaurant, RoleWasteCollector, RoleNGO, RoleUser}

// ValidRole reports whether role is one of Roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents an account that can sign in.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:32;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
