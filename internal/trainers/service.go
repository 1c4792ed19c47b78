package trainers

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes trainer registry and assignment operations.
type Service interface {
	RegisterTrainer(ctx context.Context, staffID uint, speciality string, active bool) (*TrainerDTO, error)
	Assign(ctx context.Context, trainerID, memberID uint, notes string) error
	ListRelationships(ctx context.Context, filter string) ([]RelationshipDTO, error)
	ListClients(ctx context.Context, trainerID uint) ([]ClientDTO, error)
	ListClientsForUser(ctx context.Context, userID uint) ([]ClientDTO, error)
	CountActive(ctx context.Context) (int64, error)
}

type service struct {
	client *db.Client
	repo   *Repository
}

// NewService builds the trainer service.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("trainers repository required")
	}
	return &service{client: client, repo: repo}, nil
}

const dateLayout = "2006-01-02"

// RegisterTrainer attaches the trainer specialization to an existing
// staff record.
func (s *service) RegisterTrainer(ctx context.Context, staffID uint, speciality string, active bool) (*TrainerDTO, error) {
	speciality = strings.TrimSpace(speciality)
	if speciality == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "speciality required")
	}

	var staffRecord models.Staff
	if err := s.client.DB().WithContext(ctx).First(&staffRecord, "id = ?", staffID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load staff")
	}

	trainer, err := s.repo.Create(ctx, &models.Trainer{
		StaffID:    staffID,
		Speciality: speciality,
		Active:     active,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "staff is already a trainer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register trainer")
	}

	return &TrainerDTO{
		StaffID:    trainer.StaffID,
		FirstName:  staffRecord.FirstName,
		LastName:   staffRecord.LastName,
		Speciality: trainer.Speciality,
		Active:     trainer.Active,
	}, nil
}

// Assign pairs a trainer with a member. Repeating an existing pairing
// replaces the notes and clears the end date instead of failing.
func (s *service) Assign(ctx context.Context, trainerID, memberID uint, notes string) error {
	if _, err := s.repo.FindByStaffID(ctx, trainerID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "trainer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load trainer")
	}

	var member models.Member
	if err := s.client.DB().WithContext(ctx).First(&member, "id = ?", memberID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	assignment := &models.TrainerAssignment{
		TrainerID: trainerID,
		MemberID:  memberID,
		StartDate: time.Now().UTC().Truncate(24 * time.Hour),
		Notes:     strings.TrimSpace(notes),
	}
	if err := s.repo.Upsert(ctx, assignment); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign trainer")
	}
	return nil
}

func (s *service) ListRelationships(ctx context.Context, filter string) ([]RelationshipDTO, error) {
	rows, err := s.repo.ListRelationships(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list relationships")
	}

	dtos := make([]RelationshipDTO, 0, len(rows))
	for _, row := range rows {
		dto := RelationshipDTO{
			TrainerID:   row.TrainerID,
			TrainerName: row.TrainerFirst + " " + row.TrainerLast,
			MemberID:    row.MemberID,
			MemberName:  row.MemberFirst + " " + row.MemberLast,
			StartDate:   row.StartDate.Format(dateLayout),
			Notes:       row.Notes,
		}
		if row.EndDate != nil {
			formatted := row.EndDate.Format(dateLayout)
			dto.EndDate = &formatted
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// ListClients is the trainer-scoped view; an unknown trainer simply has
// no clients.
func (s *service) ListClients(ctx context.Context, trainerID uint) ([]ClientDTO, error) {
	rows, err := s.repo.ListClients(ctx, trainerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list clients")
	}

	dtos := make([]ClientDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ClientDTO{
			MemberID:   row.MemberID,
			MemberName: row.MemberFirst + " " + row.MemberLast,
			StartDate:  row.StartDate.Format(dateLayout),
			Notes:      row.Notes,
		})
	}
	return dtos, nil
}

// ListClientsForUser maps a login onto its trainer record by name.
// Logins and staff rows share no foreign key, so the display name is the
// join; a login with no matching trainer simply has no clients.
func (s *service) ListClientsForUser(ctx context.Context, userID uint) ([]ClientDTO, error) {
	var user models.User
	if err := s.client.DB().WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return []ClientDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	var staffRecord models.Staff
	err := s.client.DB().WithContext(ctx).
		Joins("JOIN trainers ON trainers.staff_id = staff.id").
		Where("LOWER(staff.first_name) = ? AND LOWER(staff.last_name) = ?",
			strings.ToLower(user.FirstName), strings.ToLower(user.LastName)).
		First(&staffRecord).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return []ClientDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve trainer")
	}

	return s.ListClients(ctx, staffRecord.ID)
}

func (s *service) CountActive(ctx context.Context) (int64, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active trainers")
	}
	return count, nil
}
