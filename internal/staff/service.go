package staff

import (
	"context"
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

// Service exposes staff registry operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*StaffDTO, error)
}

type service struct {
	client *db.Client
}

// NewService builds the staff registry service.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{client: client}, nil
}

// Register persists the base staff row plus exactly one specialization
// row matching the declared staff type, all inside one transaction.
func (s *service) Register(ctx context.Context, input RegisterInput) (*StaffDTO, error) {
	base, err := buildBase(input)
	if err != nil {
		return nil, err
	}

	specialize, dto, err := buildSpecialization(input)
	if err != nil {
		return nil, err
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(base).Error; err != nil {
			return err
		}
		return specialize(tx, base.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register staff")
	}

	result := toDTO(base, input.StaffType)
	result.HourlyRate = dto.HourlyRate
	result.AnnualSalary = dto.AnnualSalary
	result.ManagerShift = dto.ManagerShift
	result.ContractorType = dto.ContractorType
	result.ContractorInfo = dto.ContractorInfo
	return &result, nil
}

func buildBase(input RegisterInput) (*models.Staff, error) {
	if strings.TrimSpace(input.SSN) == "" ||
		strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required staff fields")
	}

	birthDate, err := time.Parse(dateLayout, input.BirthDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid birth date")
	}

	employmentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.EmploymentDate != "" {
		employmentDate, err = time.Parse(dateLayout, input.EmploymentDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid employment date")
		}
	}

	return &models.Staff{
		SSN:            strings.TrimSpace(input.SSN),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		EmploymentDate: employmentDate,
		BirthDate:      birthDate,
		Address:        strings.TrimSpace(input.Address),
	}, nil
}

// buildSpecialization validates the type-specific fields up front and
// returns the insert to run once the base row's id is known.
func buildSpecialization(input RegisterInput) (func(tx *gorm.DB, staffID uint) error, StaffDTO, error) {
	var dto StaffDTO

	switch input.StaffType {
	case enums.StaffTypeHourly:
		rate, err := decimal.NewFromString(strings.TrimSpace(input.HourlyRate))
		if err != nil || rate.IsNegative() {
			return nil, dto, pkgerrors.New(pkgerrors.CodeValidation, "invalid hourly rate")
		}
		dto.HourlyRate = rate.StringFixed(2)
		return func(tx *gorm.DB, staffID uint) error {
			return tx.Create(&models.HourlyEmployee{StaffID: staffID, Rate: rate}).Error
		}, dto, nil

	case enums.StaffTypeSalary:
		salary, err := decimal.NewFromString(strings.TrimSpace(input.AnnualSalary))
		if err != nil || salary.IsNegative() {
			return nil, dto, pkgerrors.New(pkgerrors.CodeValidation, "invalid annual salary")
		}
		dto.AnnualSalary = salary.StringFixed(2)
		return func(tx *gorm.DB, staffID uint) error {
			return tx.Create(&models.SalaryEmployee{StaffID: staffID, AnnualSalary: salary}).Error
		}, dto, nil

	case enums.StaffTypeMaintenance:
		return func(tx *gorm.DB, staffID uint) error {
			return tx.Create(&models.MaintenanceEmployee{StaffID: staffID}).Error
		}, dto, nil

	case enums.StaffTypeManager:
		shift := strings.TrimSpace(input.ManagerShift)
		if shift == "" {
			return nil, dto, pkgerrors.New(pkgerrors.CodeValidation, "manager shift required")
		}
		dto.ManagerShift = shift
		return func(tx *gorm.DB, staffID uint) error {
			return tx.Create(&models.Manager{StaffID: staffID, Shift: shift}).Error
		}, dto, nil

	case enums.StaffTypeContractor:
		contractorType := strings.TrimSpace(input.ContractorType)
		if contractorType == "" {
			return nil, dto, pkgerrors.New(pkgerrors.CodeValidation, "contractor type required")
		}
		dto.ContractorType = contractorType
		dto.ContractorInfo = strings.TrimSpace(input.ContractorInfo)
		return func(tx *gorm.DB, staffID uint) error {
			return tx.Create(&models.Contractor{
				StaffID: staffID,
				Type:    contractorType,
				Details: strings.TrimSpace(input.ContractorInfo),
			}).Error
		}, dto, nil

	default:
		return nil, dto, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff type")
	}
}
