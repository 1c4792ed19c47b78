package exercises

import "github.com/isaacstephens/gymman-backend/pkg/db/models"

// StrengthInput carries the lifting detail for a new entry.
type StrengthInput struct {
	Weight string
	Unit   string
	Sets   int
	Reps   int
	Notes  string
}

// CardioInput carries the cardio detail; a positive distance also
// records a run.
type CardioInput struct {
	AvgHR    int
	Duration int
	Distance string
}

// LogInput carries a new workout entry. RPE arrives as a string and is
// parsed during validation; at most one detail block may be set.
type LogInput struct {
	MemberID uint
	Name     string
	RPE      string
	Date     string

	Strength *StrengthInput
	Cardio   *CardioInput
}

// ModifyInput carries the partial update; nil fields keep their values.
type ModifyInput struct {
	RPE  *string
	Date *string
}

// StrengthDTO is the public lifting-detail view.
type StrengthDTO struct {
	Weight string `json:"weight"`
	Unit   string `json:"unit"`
	Sets   int    `json:"sets"`
	Reps   int    `json:"reps"`
	Notes  string `json:"notes,omitempty"`
}

// CardioDTO is the public cardio-detail view.
type CardioDTO struct {
	AvgHR    int     `json:"avg_hr"`
	Duration int     `json:"duration_minutes"`
	Distance *string `json:"distance,omitempty"`
}

// ExerciseDTO is the public workout entry view with any detail attached.
type ExerciseDTO struct {
	ID       uint         `json:"id"`
	MemberID uint         `json:"member_id"`
	Name     string       `json:"name"`
	RPE      int          `json:"rpe"`
	Date     string       `json:"date"`
	Strength *StrengthDTO `json:"strength,omitempty"`
	Cardio   *CardioDTO   `json:"cardio,omitempty"`
}

// StatsDTO carries the per-member aggregates; every figure is zero when
// the member has no qualifying rows.
type StatsDTO struct {
	AvgRPE         string `json:"avg_rpe"`
	MaxWeight      string `json:"max_weight"`
	AvgRunDistance string `json:"avg_run_distance"`
}

const dateLayout = "2006-01-02"

func toDTO(exercise *models.Exercise) ExerciseDTO {
	return ExerciseDTO{
		ID:       exercise.ID,
		MemberID: exercise.MemberID,
		Name:     exercise.Name,
		RPE:      exercise.RPE,
		Date:     exercise.Date.Format(dateLayout),
	}
}
