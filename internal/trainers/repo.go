package trainers

import (
	"context"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes trainer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a trainers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// relationshipRow is the flat scan target for the joined listing.
type relationshipRow struct {
	TrainerID    uint
	TrainerFirst string
	TrainerLast  string
	MemberID     uint
	MemberFirst  string
	MemberLast   string
	StartDate    time.Time
	EndDate      *time.Time
	Notes        string
}

// Create inserts a trainer specialization row.
func (r *Repository) Create(ctx context.Context, trainer *models.Trainer) (*models.Trainer, error) {
	if err := r.db.WithContext(ctx).Create(trainer).Error; err != nil {
		return nil, err
	}
	return trainer, nil
}

// FindByStaffID loads a trainer by its staff id.
func (r *Repository) FindByStaffID(ctx context.Context, staffID uint) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, "staff_id = ?", staffID).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

// Upsert writes the trainer-client pairing. An existing pair keeps its
// start date but gets the notes replaced and any end date cleared, so a
// reassignment reactivates the relationship.
func (r *Repository) Upsert(ctx context.Context, assignment *models.TrainerAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trainer_id"}, {Name: "member_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"notes":    assignment.Notes,
				"end_date": nil,
			}),
		}).
		Create(assignment).Error
}

const relationshipSelect = "trainer_assignments.trainer_id AS trainer_id, " +
	"staff.first_name AS trainer_first, staff.last_name AS trainer_last, " +
	"trainer_assignments.member_id AS member_id, " +
	"members.first_name AS member_first, members.last_name AS member_last, " +
	"trainer_assignments.start_date AS start_date, " +
	"trainer_assignments.end_date AS end_date, " +
	"trainer_assignments.notes AS notes"

// ListRelationships returns every trainer-client pairing, optionally
// filtered by a case-insensitive name match on either party.
func (r *Repository) ListRelationships(ctx context.Context, filter string) ([]relationshipRow, error) {
	query := r.db.WithContext(ctx).
		Table("trainer_assignments").
		Select(relationshipSelect).
		Joins("JOIN trainers ON trainers.staff_id = trainer_assignments.trainer_id").
		Joins("JOIN staff ON staff.id = trainers.staff_id").
		Joins("JOIN members ON members.id = trainer_assignments.member_id").
		Order("trainer_assignments.trainer_id, trainer_assignments.member_id")

	if trimmed := strings.TrimSpace(filter); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where(
			"LOWER(staff.first_name || ' ' || staff.last_name) LIKE ?"+
				" OR LOWER(members.first_name || ' ' || members.last_name) LIKE ?",
			pattern, pattern,
		)
	}

	var rows []relationshipRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListClients returns the pairings for one trainer.
func (r *Repository) ListClients(ctx context.Context, trainerID uint) ([]relationshipRow, error) {
	var rows []relationshipRow
	err := r.db.WithContext(ctx).
		Table("trainer_assignments").
		Select(relationshipSelect).
		Joins("JOIN trainers ON trainers.staff_id = trainer_assignments.trainer_id").
		Joins("JOIN staff ON staff.id = trainers.staff_id").
		Joins("JOIN members ON members.id = trainer_assignments.member_id").
		Where("trainer_assignments.trainer_id = ?", trainerID).
		Order("trainer_assignments.member_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActive returns the active-trainer count for the dashboard.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Trainer{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
