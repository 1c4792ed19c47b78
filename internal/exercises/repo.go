package exercises

import (
	"context"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes exercise log persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an exercises repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads one entry by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

// List returns a member's entries newest first.
func (r *Repository) List(ctx context.Context, memberID uint) ([]models.Exercise, error) {
	var rows []models.Exercise
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StrengthDetail loads the lifting detail, nil when absent.
func (r *Repository) StrengthDetail(ctx context.Context, exerciseID uint) (*models.StrengthExercise, error) {
	var detail models.StrengthExercise
	err := r.db.WithContext(ctx).First(&detail, "exercise_id = ?", exerciseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// CardioDetail loads the cardio detail plus any run row, nil when absent.
func (r *Repository) CardioDetail(ctx context.Context, exerciseID uint) (*models.CardioExercise, *models.Run, error) {
	var detail models.CardioExercise
	err := r.db.WithContext(ctx).First(&detail, "exercise_id = ?", exerciseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var run models.Run
	err = r.db.WithContext(ctx).First(&run, "exercise_id = ?", exerciseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &detail, nil, nil
		}
		return nil, nil, err
	}
	return &detail, &run, nil
}

// Update applies the partial field map to one entry.
func (r *Repository) Update(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteTree removes the entry and its detail rows inside the caller's
// transaction, deepest first.
func DeleteTree(tx *gorm.DB, exerciseID uint) error {
	if err := tx.Where("exercise_id = ?", exerciseID).Delete(&models.Run{}).Error; err != nil {
		return err
	}
	if err := tx.Where("exercise_id = ?", exerciseID).Delete(&models.CardioExercise{}).Error; err != nil {
		return err
	}
	if err := tx.Where("exercise_id = ?", exerciseID).Delete(&models.StrengthExercise{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", exerciseID).Delete(&models.Exercise{}).Error
}

// AvgRPE averages a member's RPE values, zero when no rows exist.
func (r *Repository) AvgRPE(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	var result struct {
		Value decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(AVG(rpe), 0) AS value").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Value, nil
}

// MaxWeight returns the heaviest strength entry, zero when none exist.
func (r *Repository) MaxWeight(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	var result struct {
		Value decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("strength_exercises").
		Joins("JOIN exercises ON exercises.id = strength_exercises.exercise_id").
		Where("exercises.member_id = ?", memberID).
		Select("COALESCE(MAX(strength_exercises.weight), 0) AS value").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Value, nil
}

// AvgRunDistance averages the member's run distances, zero when none exist.
func (r *Repository) AvgRunDistance(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	var result struct {
		Value decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("runs").
		Joins("JOIN exercises ON exercises.id = runs.exercise_id").
		Where("exercises.member_id = ?", memberID).
		Select("COALESCE(AVG(runs.distance), 0) AS value").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Value, nil
}
