package exercises

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the exercise log operations.
type Service interface {
	Log(ctx context.Context, input LogInput) (*ExerciseDTO, error)
	Modify(ctx context.Context, id uint, input ModifyInput) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, memberID uint) ([]ExerciseDTO, error)
	Stats(ctx context.Context, memberID uint) (*StatsDTO, error)
}

type service struct {
	client *db.Client
	repo   *Repository
}

// NewService builds the exercise log service.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("exercises repository required")
	}
	return &service{client: client, repo: repo}, nil
}

// Log records a workout entry and its detail rows in one transaction.
// The RPE must be an integer and the strength/cardio details are
// mutually exclusive; a positive cardio distance also records a run.
func (s *service) Log(ctx context.Context, input LogInput) (*ExerciseDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exercise name required")
	}
	rpe, err := strconv.Atoi(strings.TrimSpace(input.RPE))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rpe must be an integer")
	}
	if input.Strength != nil && input.Cardio != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "strength and cardio details are mutually exclusive")
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != "" {
		date, err = time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid exercise date")
		}
	}

	dto := ExerciseDTO{MemberID: input.MemberID, Name: strings.TrimSpace(input.Name), RPE: rpe}

	var weight, distance decimal.Decimal
	if input.Strength != nil {
		weight, err = decimal.NewFromString(strings.TrimSpace(input.Strength.Weight))
		if err != nil || weight.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid weight")
		}
		dto.Strength = &StrengthDTO{
			Weight: weight.StringFixed(2),
			Unit:   input.Strength.Unit,
			Sets:   input.Strength.Sets,
			Reps:   input.Strength.Reps,
			Notes:  input.Strength.Notes,
		}
	}
	if input.Cardio != nil {
		dto.Cardio = &CardioDTO{AvgHR: input.Cardio.AvgHR, Duration: input.Cardio.Duration}
		if strings.TrimSpace(input.Cardio.Distance) != "" {
			distance, err = decimal.NewFromString(strings.TrimSpace(input.Cardio.Distance))
			if err != nil || distance.IsNegative() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid distance")
			}
			if distance.IsPositive() {
				formatted := distance.StringFixed(2)
				dto.Cardio.Distance = &formatted
			}
		}
	}

	var member models.Member
	if err := s.client.DB().WithContext(ctx).First(&member, "id = ?", input.MemberID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	exercise := &models.Exercise{
		MemberID: input.MemberID,
		Name:     dto.Name,
		RPE:      rpe,
		Date:     date,
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(exercise).Error; err != nil {
			return err
		}
		if input.Strength != nil {
			return tx.Create(&models.StrengthExercise{
				ExerciseID: exercise.ID,
				Weight:     weight,
				Unit:       input.Strength.Unit,
				Sets:       input.Strength.Sets,
				Reps:       input.Strength.Reps,
				Notes:      input.Strength.Notes,
			}).Error
		}
		if input.Cardio != nil {
			if err := tx.Create(&models.CardioExercise{
				ExerciseID: exercise.ID,
				AvgHR:      input.Cardio.AvgHR,
				Duration:   input.Cardio.Duration,
			}).Error; err != nil {
				return err
			}
			if distance.IsPositive() {
				return tx.Create(&models.Run{ExerciseID: exercise.ID, Distance: distance}).Error
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "log exercise")
	}

	dto.ID = exercise.ID
	dto.Date = exercise.Date.Format(dateLayout)
	return &dto, nil
}

// Modify applies a partial update; omitted fields keep their values.
func (s *service) Modify(ctx context.Context, id uint, input ModifyInput) error {
	fields := map[string]any{}
	if input.RPE != nil {
		rpe, err := strconv.Atoi(strings.TrimSpace(*input.RPE))
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "rpe must be an integer")
		}
		fields["rpe"] = rpe
	}
	if input.Date != nil {
		date, err := time.Parse(dateLayout, *input.Date)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid exercise date")
		}
		fields["date"] = date
	}
	if len(fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no exercise fields to update")
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "modify exercise")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "exercise not found")
	}
	return nil
}

// Delete removes the entry and its detail rows in one transaction.
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "exercise not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load exercise")
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return DeleteTree(tx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete exercise")
	}
	return nil
}

// List returns a member's entries newest first with details attached.
func (s *service) List(ctx context.Context, memberID uint) ([]ExerciseDTO, error) {
	rows, err := s.repo.List(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list exercises")
	}

	dtos := make([]ExerciseDTO, 0, len(rows))
	for i := range rows {
		dto := toDTO(&rows[i])

		strength, err := s.repo.StrengthDetail(ctx, rows[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load strength detail")
		}
		if strength != nil {
			dto.Strength = &StrengthDTO{
				Weight: strength.Weight.StringFixed(2),
				Unit:   strength.Unit,
				Sets:   strength.Sets,
				Reps:   strength.Reps,
				Notes:  strength.Notes,
			}
		}

		cardio, run, err := s.repo.CardioDetail(ctx, rows[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cardio detail")
		}
		if cardio != nil {
			dto.Cardio = &CardioDTO{AvgHR: cardio.AvgHR, Duration: cardio.Duration}
			if run != nil {
				formatted := run.Distance.StringFixed(2)
				dto.Cardio.Distance = &formatted
			}
		}

		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// Stats aggregates the member's log; every figure is zero when no
// qualifying rows exist.
func (s *service) Stats(ctx context.Context, memberID uint) (*StatsDTO, error) {
	avgRPE, err := s.repo.AvgRPE(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average rpe")
	}
	maxWeight, err := s.repo.MaxWeight(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "max weight")
	}
	avgDistance, err := s.repo.AvgRunDistance(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average run distance")
	}

	return &StatsDTO{
		AvgRPE:         avgRPE.StringFixed(2),
		MaxWeight:      maxWeight.StringFixed(2),
		AvgRunDistance: avgDistance.StringFixed(2),
	}, nil
}
