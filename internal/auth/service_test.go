package auth

import (
	"context"
	"testing"

	"github.com/isaacstephens/gymman-backend/internal/members"
	pkgauth "github.com/isaacstephens/gymman-backend/pkg/auth"
	"github.com/isaacstephens/gymman-backend/pkg/auth/session"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var testJWTCfg = config.JWTConfig{Secret: "test-secret", Issuer: "gymman", ExpirationMinutes: 30}

type fakeUsersRepo struct {
	byUsername map[string]*models.User
}

func (f *fakeUsersRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeSessions struct {
	created []session.Record
	revoked []string
	nextID  string
}

func (f *fakeSessions) Create(_ context.Context, rec session.Record) (string, error) {
	f.created = append(f.created, rec)
	if f.nextID == "" {
		f.nextID = session.NewSessionID()
	}
	return f.nextID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.revoked = append(f.revoked, sessionID)
	return nil
}

type fakeMemberCreator struct {
	created []members.CreateMemberInput
	err     error
}

func (f *fakeMemberCreator) Create(_ context.Context, input members.CreateMemberInput) (*members.MemberDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	return &members.MemberDTO{ID: 1, FirstName: input.FirstName, LastName: input.LastName, Email: input.Email}, nil
}

func seedUser(t *testing.T, username, password string, role enums.Role) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password, testPasswordCfg)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
	}
}

func TestLoginSuccessMintsTokenAndSession(t *testing.T) {
	user := seedUser(t, "ada", "correct horse", enums.RoleStaff)
	sessions := &fakeSessions{}
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{"ada": user}}, &fakeMemberCreator{}, sessions, testJWTCfg)
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), LoginInput{Username: "ada", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "ada", result.User.Username)
	assert.Equal(t, enums.RoleStaff, result.User.Role)

	require.Len(t, sessions.created, 1)
	assert.Equal(t, "Ada Lovelace", sessions.created[0].Name)

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, sessions.nextID, claims.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	user := seedUser(t, "ada", "correct horse", enums.RoleMember)
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{"ada": user}}, &fakeMemberCreator{}, &fakeSessions{}, testJWTCfg)
	require.NoError(t, err)

	_, badUser := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "correct horse"})
	_, badPass := svc.Login(context.Background(), LoginInput{Username: "ada", Password: "wrong"})

	require.Error(t, badUser)
	require.Error(t, badPass)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(badUser).Code())
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(badPass).Code())
	assert.Equal(t, pkgerrors.As(badUser).Message(), pkgerrors.As(badPass).Message())
}

func TestRegisterPasswordMismatch(t *testing.T) {
	creator := &fakeMemberCreator{}
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{}}, creator, &fakeSessions{}, testJWTCfg)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Username:       "ada",
		Password:       "one",
		PasswordRepeat: "two",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, creator.created)
}

func TestRegisterDelegatesToMemberRegistry(t *testing.T) {
	user := seedUser(t, "ada", "correct horse", enums.RoleMember)
	creator := &fakeMemberCreator{}
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{"ada": user}}, creator, &fakeSessions{}, testJWTCfg)
	require.NoError(t, err)

	summary, err := svc.Register(context.Background(), RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Username:       "ada",
		Password:       "correct horse",
		PasswordRepeat: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", summary.Username)

	require.Len(t, creator.created, 1)
	assert.Equal(t, "ada@example.com", creator.created[0].Email)
}

func TestRegisterPropagatesConflict(t *testing.T) {
	creator := &fakeMemberCreator{err: pkgerrors.New(pkgerrors.CodeConflict, "username or email already registered")}
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{}}, creator, &fakeSessions{}, testJWTCfg)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		Username:       "ada",
		Password:       "pw",
		PasswordRepeat: "pw",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &fakeSessions{}
	svc, err := NewService(&fakeUsersRepo{byUsername: map[string]*models.User{}}, &fakeMemberCreator{}, sessions, testJWTCfg)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "session-123"))
	assert.Equal(t, []string{"session-123"}, sessions.revoked)
}
