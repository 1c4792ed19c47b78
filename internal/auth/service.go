package auth

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/isaacstephens/gymman-backend/internal/members"
	"github.com/isaacstephens/gymman-backend/internal/users"
	pkgauth "github.com/isaacstephens/gymman-backend/pkg/auth"
	"github.com/isaacstephens/gymman-backend/pkg/auth/session"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/security"
	"gorm.io/gorm"
)

type usersRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type sessionManager interface {
	Create(ctx context.Context, rec session.Record) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

type memberCreator interface {
	Create(ctx context.Context, input members.CreateMemberInput) (*members.MemberDTO, error)
}

// Service exposes the credential store operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*users.Summary, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	users    usersRepository
	members  memberCreator
	sessions sessionManager
	jwtCfg   config.JWTConfig
}

// NewService builds the credential store service.
func NewService(usersRepo usersRepository, membersSvc memberCreator, sessions sessionManager, jwtCfg config.JWTConfig) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if membersSvc == nil {
		return nil, fmt.Errorf("members service required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		users:    usersRepo,
		members:  membersSvc,
		sessions: sessions,
		jwtCfg:   jwtCfg,
	}, nil
}

// Login verifies the credentials and mints a bearer token whose jti keys
// a fresh server-side session. A wrong username and a wrong password are
// indistinguishable to the caller.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	sessionID, err := s.sessions.Create(ctx, session.Record{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Name:     user.FirstName + " " + user.LastName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResult{Token: token, User: users.FromModel(user)}, nil
}

// Register self-registers a member: password repeat must match, the
// identity must be new, and the login row plus the member row land in one
// transaction (delegated to the member registry).
func (s *service) Register(ctx context.Context, input RegisterInput) (*users.Summary, error) {
	if input.Password == "" || input.Password != input.PasswordRepeat {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	_, err := s.members.Create(ctx, members.CreateMemberInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Username:  input.Username,
		Password:  input.Password,
	})
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load registered user")
	}

	summary := users.FromModel(user)
	return &summary, nil
}

// Logout revokes the caller's session; the bearer token dies with it.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
