package members

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/isaacstephens/gymman-backend/internal/users"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/security"
	"gorm.io/gorm"
)

// Service exposes member registry operations.
type Service interface {
	Find(ctx context.Context, query string) (*MemberDTO, error)
	Lookup(ctx context.Context, query string) ([]MemberDTO, error)
	Create(ctx context.Context, input CreateMemberInput) (*MemberDTO, error)
	Delete(ctx context.Context, memberID uint) (bool, error)
	UpdateEmail(ctx context.Context, memberID uint, newEmail string) error
	AddPhone(ctx context.Context, memberID uint, input AddPhoneInput) (*PhoneDTO, error)
	DeletePhone(ctx context.Context, memberID, phoneID uint) error
	AddEmergencyContact(ctx context.Context, memberID uint, input ContactInput) (*EmergencyContactDTO, error)
	UpdateEmergencyContact(ctx context.Context, memberID, contactID uint, input ContactInput) error
	DeleteEmergencyContact(ctx context.Context, memberID, contactID uint) error
}

type service struct {
	client      *db.Client
	repo        *Repository
	users       *users.Repository
	passwordCfg config.PasswordConfig
}

// NewService builds the member registry service.
func NewService(client *db.Client, repo *Repository, usersRepo *users.Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("members repository required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{
		client:      client,
		repo:        repo,
		users:       usersRepo,
		passwordCfg: passwordCfg,
	}, nil
}

// CreateMemberInput carries the member fields plus the login credentials
// created alongside the member row.
type CreateMemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
	BirthDate string
	Sex       string
}

// AddPhoneInput carries a new phone number for a member.
type AddPhoneInput struct {
	Number string
	Type   string
}

// ContactInput carries emergency-contact fields for create and update.
type ContactInput struct {
	FirstName    string
	LastName     string
	Relationship string
	Phone        string
	Email        string
}

func (s *service) Find(ctx context.Context, query string) (*MemberDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}
	member, err := s.repo.FindFirst(ctx, query)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find member")
	}
	dto := ToDTO(member)
	return &dto, nil
}

func (s *service) Lookup(ctx context.Context, query string) ([]MemberDTO, error) {
	matches, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup members")
	}
	dtos := make([]MemberDTO, 0, len(matches))
	for i := range matches {
		dtos = append(dtos, ToDTO(&matches[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateMemberInput) (*MemberDTO, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required member fields")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	birthDate, err := parseDate(input.BirthDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid birth date")
	}

	if _, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already registered")
	} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check duplicate identity")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	member := &models.Member{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		BirthDate:           birthDate,
		MembershipStartDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if input.Sex != "" {
		sex := input.Sex
		member.Sex = &sex
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := NewRepository(tx).Create(ctx, member); err != nil {
			return err
		}
		_, err := users.NewRepository(tx).Create(ctx, &models.User{
			Username:     input.Username,
			PasswordHash: hash,
			Role:         enums.RoleMember,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
		})
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create member")
	}

	dto := ToDTO(member)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, memberID uint) (bool, error) {
	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		if err := txRepo.DeleteDependents(ctx, memberID); err != nil {
			return err
		}
		if err := users.NewRepository(tx).DeleteByEmail(ctx, member.Email); err != nil {
			return err
		}
		return txRepo.Delete(ctx, memberID)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete member")
	}
	return true, nil
}

func (s *service) UpdateEmail(ctx context.Context, memberID uint, newEmail string) error {
	newEmail = strings.TrimSpace(newEmail)
	if !strings.Contains(newEmail, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	member, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := NewRepository(tx).UpdateEmail(ctx, memberID, newEmail); err != nil {
			return err
		}
		return users.NewRepository(tx).UpdateEmail(ctx, member.Email, newEmail)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update member email")
	}
	return nil
}

func (s *service) AddPhone(ctx context.Context, memberID uint, input AddPhoneInput) (*PhoneDTO, error) {
	if strings.TrimSpace(input.Number) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number required")
	}
	phoneType := strings.ToLower(strings.TrimSpace(input.Type))
	if !enums.PhoneType(phoneType).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone type")
	}
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	phone, err := s.repo.AddPhone(ctx, &models.PhoneNumber{
		MemberID: memberID,
		Number:   strings.TrimSpace(input.Number),
		Type:     phoneType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add phone")
	}
	return &PhoneDTO{ID: phone.ID, Number: phone.Number, Type: phone.Type}, nil
}

func (s *service) DeletePhone(ctx context.Context, memberID, phoneID uint) error {
	deleted, err := s.repo.DeletePhone(ctx, memberID, phoneID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete phone")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "phone not found")
	}
	return nil
}

func (s *service) AddEmergencyContact(ctx context.Context, memberID uint, input ContactInput) (*EmergencyContactDTO, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required contact fields")
	}
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	contact, err := s.repo.AddEmergencyContact(ctx, &models.EmergencyContact{
		MemberID:     memberID,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Relationship: strings.TrimSpace(input.Relationship),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add emergency contact")
	}
	return &EmergencyContactDTO{
		ID:           contact.ID,
		FirstName:    contact.FirstName,
		LastName:     contact.LastName,
		Relationship: contact.Relationship,
		Phone:        contact.Phone,
		Email:        contact.Email,
	}, nil
}

func (s *service) UpdateEmergencyContact(ctx context.Context, memberID, contactID uint, input ContactInput) error {
	fields := map[string]any{}
	if value := strings.TrimSpace(input.FirstName); value != "" {
		fields["first_name"] = value
	}
	if value := strings.TrimSpace(input.LastName); value != "" {
		fields["last_name"] = value
	}
	if value := strings.TrimSpace(input.Relationship); value != "" {
		fields["relationship"] = value
	}
	if value := strings.TrimSpace(input.Phone); value != "" {
		fields["phone"] = value
	}
	if value := strings.TrimSpace(input.Email); value != "" {
		fields["email"] = value
	}
	if len(fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no contact fields to update")
	}

	updated, err := s.repo.UpdateEmergencyContact(ctx, memberID, contactID, fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update emergency contact")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "emergency contact not found")
	}
	return nil
}

func (s *service) DeleteEmergencyContact(ctx context.Context, memberID, contactID uint) error {
	deleted, err := s.repo.DeleteEmergencyContact(ctx, memberID, contactID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete emergency contact")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "emergency contact not found")
	}
	return nil
}

func (s *service) requireMember(ctx context.Context, memberID uint) error {
	if _, err := s.repo.FindByID(ctx, memberID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	return nil
}
