package models

import "time"

// Trainer attaches the training capability to an existing staff row.
type Trainer struct {
	StaffID    uint   `gorm:"column:staff_id;primaryKey"`
	Speciality string `gorm:"not null"`
	Active     bool   `gorm:"not null"`
}

// TrainerAssignment relates a trainer to a client member. The composite
// key gives reassignment its upsert semantics: an existing pair gets its
// notes replaced and end_date cleared instead of a duplicate row.
type TrainerAssignment struct {
	TrainerID uint       `gorm:"column:trainer_id;primaryKey"`
	MemberID  uint       `gorm:"column:member_id;primaryKey"`
	StartDate time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate   *time.Time `gorm:"column:end_date;type:date"`
	Notes     string     `gorm:""`
}
