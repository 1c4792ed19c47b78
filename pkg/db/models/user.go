package models

import (
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

// User represents a login identity. A member-facing user shares its email
// with exactly one Members row; deleting that member removes the user too.
type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"`
	Username     string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"type:text;not null;default:member"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
