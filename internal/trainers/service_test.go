package trainers

import (
	"context"
	"testing"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
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
		&models.Trainer{},
		&models.TrainerAssignment{},
		&models.Member{},
	))

	client := db.NewWithConn(conn)
	svc, err := NewService(client, NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func seedStaff(t *testing.T, client *db.Client, first, last string) uint {
	t.Helper()

	record := &models.Staff{
		SSN:            "123-45-6789",
		FirstName:      first,
		LastName:       last,
		EmploymentDate: time.Now(),
		BirthDate:      time.Now().AddDate(-30, 0, 0),
		Address:        "1 Gym St",
	}
	require.NoError(t, client.DB().Create(record).Error)
	return record.ID
}

func seedMember(t *testing.T, client *db.Client, first, last string) uint {
	t.Helper()

	record := &models.Member{
		FirstName:           first,
		LastName:            last,
		Email:               first + "@example.com",
		MembershipStartDate: time.Now(),
	}
	require.NoError(t, client.DB().Create(record).Error)
	return record.ID
}

func TestRegisterTrainerRequiresStaff(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RegisterTrainer(context.Background(), 99, "strength", true)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRegisterTrainer(t *testing.T) {
	svc, client := newTestService(t)
	staffID := seedStaff(t, client, "Grace", "Hopper")

	dto, err := svc.RegisterTrainer(context.Background(), staffID, "conditioning", true)
	require.NoError(t, err)
	assert.Equal(t, staffID, dto.StaffID)
	assert.Equal(t, "Grace", dto.FirstName)
	assert.True(t, dto.Active)
}

func TestAssignUpsertReplacesNotesAndClearsEndDate(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	trainerID := seedStaff(t, client, "Grace", "Hopper")
	memberID := seedMember(t, client, "Ada", "Lovelace")

	_, err := svc.RegisterTrainer(ctx, trainerID, "strength", true)
	require.NoError(t, err)

	require.NoError(t, svc.Assign(ctx, trainerID, memberID, "mondays"))

	// simulate an ended relationship, then reassign
	ended := time.Now()
	require.NoError(t, client.DB().
		Model(&models.TrainerAssignment{}).
		Where("trainer_id = ? AND member_id = ?", trainerID, memberID).
		Update("end_date", &ended).Error)

	require.NoError(t, svc.Assign(ctx, trainerID, memberID, "wednesdays"))

	var assignments []models.TrainerAssignment
	require.NoError(t, client.DB().Find(&assignments).Error)
	require.Len(t, assignments, 1)
	assert.Equal(t, "wednesdays", assignments[0].Notes)
	assert.Nil(t, assignments[0].EndDate)
}

func TestAssignUnknownPartiesNotFound(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	trainerID := seedStaff(t, client, "Grace", "Hopper")
	_, err := svc.RegisterTrainer(ctx, trainerID, "strength", true)
	require.NoError(t, err)

	err = svc.Assign(ctx, 99, 1, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	err = svc.Assign(ctx, trainerID, 99, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListRelationshipsFiltersEitherParty(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	graceID := seedStaff(t, client, "Grace", "Hopper")
	alanID := seedStaff(t, client, "Alan", "Turing")
	adaID := seedMember(t, client, "Ada", "Lovelace")
	maryID := seedMember(t, client, "Mary", "Shelley")

	_, err := svc.RegisterTrainer(ctx, graceID, "strength", true)
	require.NoError(t, err)
	_, err = svc.RegisterTrainer(ctx, alanID, "cardio", true)
	require.NoError(t, err)

	require.NoError(t, svc.Assign(ctx, graceID, adaID, ""))
	require.NoError(t, svc.Assign(ctx, alanID, maryID, ""))

	all, err := svc.ListRelationships(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTrainer, err := svc.ListRelationships(ctx, "hopper")
	require.NoError(t, err)
	require.Len(t, byTrainer, 1)
	assert.Equal(t, "Grace Hopper", byTrainer[0].TrainerName)

	byMember, err := svc.ListRelationships(ctx, "shelley")
	require.NoError(t, err)
	require.Len(t, byMember, 1)
	assert.Equal(t, "Mary Shelley", byMember[0].MemberName)
}

func TestListClientsUnknownTrainerEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	clients, err := svc.ListClients(context.Background(), 404)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCountActiveExcludesInactive(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	activeID := seedStaff(t, client, "Grace", "Hopper")
	inactiveID := seedStaff(t, client, "Alan", "Turing")

	_, err := svc.RegisterTrainer(ctx, activeID, "strength", true)
	require.NoError(t, err)
	_, err = svc.RegisterTrainer(ctx, inactiveID, "cardio", false)
	require.NoError(t, err)

	count, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
