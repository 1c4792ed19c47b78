package staff

import (
	"context"
	"testing"

	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Staff{},
		&models.HourlyEmployee{},
		&models.SalaryEmployee{},
		&models.MaintenanceEmployee{},
		&models.Manager{},
		&models.Contractor{},
	))

	client := db.NewWithConn(conn)
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc, client
}

func baseInput(staffType enums.StaffType) RegisterInput {
	return RegisterInput{
		SSN:            "123-45-6789",
		FirstName:      "Grace",
		LastName:       "Hopper",
		EmploymentDate: "2026-01-15",
		BirthDate:      "1990-12-09",
		Address:        "1 Navy Way",
		StaffType:      staffType,
	}
}

func TestRegisterHourlyCreatesBothRows(t *testing.T) {
	svc, client := newTestService(t)

	input := baseInput(enums.StaffTypeHourly)
	input.HourlyRate = "25.00"

	dto, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "25.00", dto.HourlyRate)

	var hourly models.HourlyEmployee
	require.NoError(t, client.DB().First(&hourly, "staff_id = ?", dto.ID).Error)
	assert.True(t, hourly.Rate.Equal(decimal.RequireFromString("25.00")))

	var count int64
	require.NoError(t, client.DB().Model(&models.SalaryEmployee{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterEachSpecialization(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	salary := baseInput(enums.StaffTypeSalary)
	salary.AnnualSalary = "85000"
	_, err := svc.Register(ctx, salary)
	require.NoError(t, err)

	_, err = svc.Register(ctx, baseInput(enums.StaffTypeMaintenance))
	require.NoError(t, err)

	manager := baseInput(enums.StaffTypeManager)
	manager.ManagerShift = "night"
	_, err = svc.Register(ctx, manager)
	require.NoError(t, err)

	contractor := baseInput(enums.StaffTypeContractor)
	contractor.ContractorType = "cleaning"
	contractor.ContractorInfo = "weekends only"
	_, err = svc.Register(ctx, contractor)
	require.NoError(t, err)

	var staffCount int64
	require.NoError(t, client.DB().Model(&models.Staff{}).Count(&staffCount).Error)
	assert.EqualValues(t, 4, staffCount)

	var mgr models.Manager
	require.NoError(t, client.DB().First(&mgr).Error)
	assert.Equal(t, "night", mgr.Shift)
}

func TestRegisterUnparseablePayRejectedBeforeWrite(t *testing.T) {
	svc, client := newTestService(t)

	input := baseInput(enums.StaffTypeHourly)
	input.HourlyRate = "twenty-five"

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, client.DB().Model(&models.Staff{}).Count(&count).Error)
	assert.Zero(t, count, "validation failure must not leave a base row behind")
}

func TestRegisterMissingBaseFields(t *testing.T) {
	svc, _ := newTestService(t)

	input := baseInput(enums.StaffTypeMaintenance)
	input.Address = ""

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRegisterUnknownStaffType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), baseInput(enums.StaffType("intern")))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
