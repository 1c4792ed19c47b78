package payments

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the payment ledger operations.
type Service interface {
	Add(ctx context.Context, input AddPaymentInput) (*PaymentDTO, error)
	Search(ctx context.Context, input SearchInput) ([]PaymentDTO, error)
	AggregateRevenue(ctx context.Context, memberID *uint, withinDays *int) (decimal.Decimal, error)
	ListPending(ctx context.Context) ([]PendingPaymentDTO, error)
	CountPending(ctx context.Context) (int64, error)
}

type service struct {
	client *db.Client
	repo   *Repository
}

// NewService builds the payment ledger service.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	return &service{client: client, repo: repo}, nil
}

// Add records a ledger entry. The amount must parse as a non-negative
// decimal; status and type fall back to their defaults when omitted.
func (s *service) Add(ctx context.Context, input AddPaymentInput) (*PaymentDTO, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment amount")
	}

	status := enums.PaymentStatusPending
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := enums.ParsePaymentStatus(input.Status)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		status = parsed
	}

	paymentType := enums.PaymentTypeMembership
	if trimmed := strings.ToLower(strings.TrimSpace(input.Type)); trimmed != "" {
		candidate := enums.PaymentType(trimmed)
		if !candidate.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
		}
		paymentType = candidate
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != "" {
		date, err = time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment date")
		}
	}

	var member models.Member
	if err := s.client.DB().WithContext(ctx).First(&member, "id = ?", input.MemberID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	payment, err := s.repo.Create(ctx, &models.Payment{
		MemberID: input.MemberID,
		Amount:   amount,
		Date:     date,
		Status:   status,
		Type:     paymentType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add payment")
	}

	dto := toDTO(payment)
	return &dto, nil
}

// Search applies the optional filters conjunctively. An unrecognized
// status value is ignored rather than rejected.
func (s *service) Search(ctx context.Context, input SearchInput) ([]PaymentDTO, error) {
	var from, to *time.Time
	if input.From != "" {
		parsed, err := time.Parse(dateLayout, input.From)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid from date")
		}
		from = &parsed
	}
	if input.To != "" {
		parsed, err := time.Parse(dateLayout, input.To)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid to date")
		}
		to = &parsed
	}

	var status *enums.PaymentStatus
	if parsed, ok := enums.ParsePaymentStatus(input.Status); ok {
		status = &parsed
	}

	rows, err := s.repo.Search(ctx, input.MemberQuery, from, to, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search payments")
	}

	dtos := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toDTO(&rows[i]))
	}
	return dtos, nil
}

// AggregateRevenue sums settled rows, optionally per member and within a
// trailing calendar-day window anchored at now.
func (s *service) AggregateRevenue(ctx context.Context, memberID *uint, withinDays *int) (decimal.Decimal, error) {
	var since *time.Time
	if withinDays != nil {
		if *withinDays < 0 {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "days must be non-negative")
		}
		cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -*withinDays)
		since = &cutoff
	}

	total, err := s.repo.SumSettled(ctx, memberID, since)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate revenue")
	}
	return total, nil
}

func (s *service) ListPending(ctx context.Context) ([]PendingPaymentDTO, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending payments")
	}

	dtos := make([]PendingPaymentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, PendingPaymentDTO{
			PaymentDTO: PaymentDTO{
				ID:       row.ID,
				MemberID: row.MemberID,
				Amount:   row.Amount.StringFixed(2),
				Date:     row.Date.Format(dateLayout),
				Status:   row.Status,
				Type:     row.Type,
			},
			MemberName: row.MemberFirst + " " + row.MemberLast,
		})
	}
	return dtos, nil
}

func (s *service) CountPending(ctx context.Context) (int64, error) {
	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending payments")
	}
	return count, nil
}
