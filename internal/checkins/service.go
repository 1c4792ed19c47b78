package checkins

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"gorm.io/gorm"
)

type memberFinder interface {
	FindFirst(ctx context.Context, query string) (*models.Member, error)
}

// CheckinDTO is one recent check-in with the member's name joined in.
type CheckinDTO struct {
	ID         uint   `json:"id"`
	MemberID   uint   `json:"member_id"`
	MemberName string `json:"member_name"`
	CheckinAt  string `json:"checkin_at"`
}

// Service exposes the check-in log operations.
type Service interface {
	CheckIn(ctx context.Context, memberRef string) (*CheckinDTO, error)
	ListRecent(ctx context.Context, limit int) ([]CheckinDTO, error)
}

type service struct {
	repo    *Repository
	members memberFinder
}

// NewService builds the check-in service.
func NewService(repo *Repository, members memberFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkins repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member finder required")
	}
	return &service{repo: repo, members: members}, nil
}

// CheckIn resolves the front-desk search input to a member and appends a
// row stamped with the server clock. Blank or unresolved input is a
// not-found, never a silent no-op.
func (s *service) CheckIn(ctx context.Context, memberRef string) (*CheckinDTO, error) {
	if strings.TrimSpace(memberRef) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}

	member, err := s.members.FindFirst(ctx, memberRef)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve member")
	}

	checkin, err := s.repo.Create(ctx, &models.Checkin{
		MemberID:  member.ID,
		CheckinAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record check-in")
	}

	return &CheckinDTO{
		ID:         checkin.ID,
		MemberID:   member.ID,
		MemberName: member.FirstName + " " + member.LastName,
		CheckinAt:  checkin.CheckinAt.Format(time.RFC3339),
	}, nil
}

// ListRecent returns up to limit rows, newest first. Growing the limit
// only ever extends the returned prefix.
func (s *service) ListRecent(ctx context.Context, limit int) ([]CheckinDTO, error) {
	if limit <= 0 {
		limit = 15
	}

	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent check-ins")
	}

	dtos := make([]CheckinDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, CheckinDTO{
			ID:         row.ID,
			MemberID:   row.MemberID,
			MemberName: row.MemberFirst + " " + row.MemberLast,
			CheckinAt:  row.CheckinAt.Format(time.RFC3339),
		})
	}
	return dtos, nil
}
