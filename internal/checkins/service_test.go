package checkins

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/isaacstephens/gymman-backend/internal/members"
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
	require.NoError(t, conn.AutoMigrate(&models.Member{}, &models.Checkin{}))

	client := db.NewWithConn(conn)
	svc, err := NewService(NewRepository(client.DB()), members.NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
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

func TestCheckInByIDAndName(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	adaID := seedMember(t, client, "Ada", "Lovelace")
	seedMember(t, client, "Alan", "Turing")

	byID, err := svc.CheckIn(ctx, fmt.Sprintf("%d", adaID))
	require.NoError(t, err)
	assert.Equal(t, adaID, byID.MemberID)
	assert.Equal(t, "Ada Lovelace", byID.MemberName)

	byName, err := svc.CheckIn(ctx, "alan tur")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", byName.MemberName)
}

func TestCheckInBlankOrUnknown(t *testing.T) {
	svc, client := newTestService(t)
	seedMember(t, client, "Ada", "Lovelace")

	_, err := svc.CheckIn(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.CheckIn(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	var count int64
	require.NoError(t, client.DB().Model(&models.Checkin{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListRecentGrowingLimitExtendsPrefix(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	memberID := seedMember(t, client, "Ada", "Lovelace")

	for i := 0; i < 20; i++ {
		_, err := svc.CheckIn(ctx, fmt.Sprintf("%d", memberID))
		require.NoError(t, err)
	}

	page, err := svc.ListRecent(ctx, 15)
	require.NoError(t, err)
	require.Len(t, page, 15)

	grown, err := svc.ListRecent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, grown, 20)

	// the first page is a strict prefix of the grown page
	for i, row := range page {
		assert.Equal(t, row.ID, grown[i].ID)
	}

	// newest first
	assert.Greater(t, grown[0].ID, grown[1].ID)
}

func TestListRecentDefaultsLimit(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	memberID := seedMember(t, client, "Ada", "Lovelace")

	for i := 0; i < 16; i++ {
		_, err := svc.CheckIn(ctx, fmt.Sprintf("%d", memberID))
		require.NoError(t, err)
	}

	page, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, page, 15)
}
