package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/exercises"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

type strengthBody struct {
	Weight string `json:"weight" validate:"required"`
	Unit   string `json:"unit" validate:"required"`
	Sets   int    `json:"sets" validate:"required,min=1"`
	Reps   int    `json:"reps" validate:"required,min=1"`
	Notes  string `json:"notes,omitempty"`
}

type cardioBody struct {
	AvgHR    int    `json:"avg_hr" validate:"required,min=1"`
	Duration int    `json:"duration_minutes" validate:"required,min=1"`
	Distance string `json:"distance,omitempty"`
}

type logExerciseRequest struct {
	MemberID uint          `json:"member_id" validate:"required"`
	Name     string        `json:"name" validate:"required"`
	RPE      string        `json:"rpe" validate:"required"`
	Date     string        `json:"date,omitempty"`
	Strength *strengthBody `json:"strength,omitempty"`
	Cardio   *cardioBody   `json:"cardio,omitempty"`
}

type modifyExerciseRequest struct {
	RPE  *string `json:"rpe,omitempty"`
	Date *string `json:"date,omitempty"`
}

// ExercisesLog records a workout entry with optional detail.
func ExercisesLog(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body logExerciseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := exercises.LogInput{
			MemberID: body.MemberID,
			Name:     body.Name,
			RPE:      body.RPE,
			Date:     body.Date,
		}
		if body.Strength != nil {
			input.Strength = &exercises.StrengthInput{
				Weight: body.Strength.Weight,
				Unit:   body.Strength.Unit,
				Sets:   body.Strength.Sets,
				Reps:   body.Strength.Reps,
				Notes:  body.Strength.Notes,
			}
		}
		if body.Cardio != nil {
			input.Cardio = &exercises.CardioInput{
				AvgHR:    body.Cardio.AvgHR,
				Duration: body.Cardio.Duration,
				Distance: body.Cardio.Distance,
			}
		}

		dto, err := svc.Log(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ExercisesModify partially updates an entry.
func ExercisesModify(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body modifyExerciseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Modify(r.Context(), id, exercises.ModifyInput{RPE: body.RPE, Date: body.Date}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

// ExercisesDelete removes an entry and its detail rows.
func ExercisesDelete(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// ExercisesList returns a member's log newest first.
func ExercisesList(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ExercisesStats returns the per-member aggregates.
func ExercisesStats(svc exercises.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
