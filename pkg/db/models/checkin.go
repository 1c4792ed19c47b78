package models

import "time"

// Checkin is an append-only attendance event. Recency is defined by the
// id column (insertion order), not the timestamp.
type Checkin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	MemberID  uint      `gorm:"column:member_id;not null;index"`
	CheckinAt time.Time `gorm:"column:checkin_at;not null"`
}
