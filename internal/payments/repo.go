package payments

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes payment ledger persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a ledger row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// Search applies the optional filters conjunctively. The member query
// reuses the registry's id-or-name predicate via a join.
func (r *Repository) Search(ctx context.Context, memberQuery string, from, to *time.Time, status *enums.PaymentStatus) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Order("payments.id DESC")

	if trimmed := strings.TrimSpace(memberQuery); trimmed != "" {
		id, _ := strconv.ParseUint(trimmed, 10, 64)
		pattern := "%" + strings.ToLower(trimmed) + "%"
		query = query.
			Joins("JOIN members ON members.id = payments.member_id").
			Where("members.id = ? OR LOWER(members.first_name || ' ' || members.last_name) LIKE ?", id, pattern)
	}
	if from != nil {
		query = query.Where("payments.date >= ?", *from)
	}
	if to != nil {
		query = query.Where("payments.date <= ?", *to)
	}
	if status != nil {
		query = query.Where("payments.status = ?", *status)
	}

	var rows []models.Payment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumSettled totals complete and paid rows, optionally scoped to one
// member and to rows on or after the since date. Empty sets sum to zero.
func (r *Repository) SumSettled(ctx context.Context, memberID *uint, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status IN ?", enums.SettledPaymentStatuses())

	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	}
	if since != nil {
		query = query.Where("date >= ?", *since)
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// pendingRow is the scan target for the pending listing.
type pendingRow struct {
	ID          uint
	MemberID    uint
	Amount      decimal.Decimal
	Date        time.Time
	Status      enums.PaymentStatus
	Type        enums.PaymentType
	MemberFirst string
	MemberLast  string
}

// ListPending returns pending rows newest first with member names joined.
func (r *Repository) ListPending(ctx context.Context) ([]pendingRow, error) {
	var rows []pendingRow
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("payments.id AS id, payments.member_id AS member_id, payments.amount AS amount, "+
			"payments.date AS date, payments.status AS status, payments.type AS type, "+
			"members.first_name AS member_first, members.last_name AS member_last").
		Joins("JOIN members ON members.id = payments.member_id").
		Where("payments.status = ?", enums.PaymentStatusPending).
		Order("payments.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPending returns the pending-payment count for the dashboard.
func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", enums.PaymentStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
