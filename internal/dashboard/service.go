package dashboard

import (
	"context"
	"fmt"

	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
)

type memberCounter interface {
	Count(ctx context.Context) (int64, error)
}

type pendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type trainerCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// Summary carries the owner dashboard counters.
type Summary struct {
	TotalMembers    int64 `json:"total_members"`
	PendingPayments int64 `json:"pending_payments"`
	ActiveTrainers  int64 `json:"active_trainers"`
}

// Service assembles the owner dashboard.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	members  memberCounter
	payments pendingCounter
	trainers trainerCounter
}

// NewService builds the dashboard service from the three counters.
func NewService(members memberCounter, payments pendingCounter, trainers trainerCounter) (Service, error) {
	if members == nil {
		return nil, fmt.Errorf("member counter required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment counter required")
	}
	if trainers == nil {
		return nil, fmt.Errorf("trainer counter required")
	}
	return &service{members: members, payments: payments, trainers: trainers}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	totalMembers, err := s.members.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count members")
	}
	pending, err := s.payments.CountPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending payments")
	}
	active, err := s.trainers.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active trainers")
	}

	return &Summary{
		TotalMembers:    totalMembers,
		PendingPayments: pending,
		ActiveTrainers:  active,
	}, nil
}
