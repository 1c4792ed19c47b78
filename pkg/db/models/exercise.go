package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exercise is one logged workout entry. At most one of the strength or
// cardio detail rows extends it.
type Exercise struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	MemberID uint      `gorm:"column:member_id;not null;index"`
	Name     string    `gorm:"not null"`
	RPE      int       `gorm:"column:rpe;not null"`
	Date     time.Time `gorm:"type:date;not null"`
}

// StrengthExercise holds the lifting detail for an exercise.
type StrengthExercise struct {
	ExerciseID uint            `gorm:"column:exercise_id;primaryKey"`
	Weight     decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Unit       string          `gorm:"not null"`
	Sets       int             `gorm:"not null"`
	Reps       int             `gorm:"not null"`
	Notes      string          `gorm:""`
}

// CardioExercise holds the cardio detail; a run row extends it when a
// distance was recorded.
type CardioExercise struct {
	ExerciseID uint `gorm:"column:exercise_id;primaryKey"`
	AvgHR      int  `gorm:"column:avg_hr;not null"`
	Duration   int  `gorm:"column:duration_minutes;not null"`
}

// Run records the distance for a cardio entry.
type Run struct {
	ExerciseID uint            `gorm:"column:exercise_id;primaryKey"`
	Distance   decimal.Decimal `gorm:"type:numeric(8,2);not null"`
}
