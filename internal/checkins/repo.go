package checkins

import (
	"context"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes check-in persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a checkins repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a check-in row.
func (r *Repository) Create(ctx context.Context, checkin *models.Checkin) (*models.Checkin, error) {
	if err := r.db.WithContext(ctx).Create(checkin).Error; err != nil {
		return nil, err
	}
	return checkin, nil
}

// recentRow is the scan target for the joined recent listing.
type recentRow struct {
	ID          uint
	MemberID    uint
	CheckinAt   time.Time
	MemberFirst string
	MemberLast  string
}

// ListRecent returns the newest rows first, capped at limit. Recency is
// insertion order, so the id column is the sort key.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]recentRow, error) {
	var rows []recentRow
	err := r.db.WithContext(ctx).
		Table("checkins").
		Select("checkins.id AS id, checkins.member_id AS member_id, checkins.checkin_at AS checkin_at, "+
			"members.first_name AS member_first, members.last_name AS member_last").
		Joins("JOIN members ON members.id = checkins.member_id").
		Order("checkins.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
