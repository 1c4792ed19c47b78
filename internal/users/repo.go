package users

import (
	"context"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes login-identity persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves the user matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail powers the pre-insert duplicate-identity check.
func (r *Repository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmail rewrites the email on the user row matched by the old email.
// Member email updates go through here so the identity link stays intact.
func (r *Repository) UpdateEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", oldEmail).
		UpdateColumn("email", newEmail).Error
}

// DeleteByEmail removes the user row paired with a member by email.
func (r *Repository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.User{}).Error
}
