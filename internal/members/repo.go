package members

import (
	"context"
	"strconv"
	"strings"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes member persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a members repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// idFromQuery extracts a numeric member id from free-form search input.
// Non-numeric input yields 0, which never matches a row.
func idFromQuery(query string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(query), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// FindFirst matches by exact id or case-insensitive substring of
// "first last" and returns the first row in id order.
func (r *Repository) FindFirst(ctx context.Context, query string) (*models.Member, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("id = ? OR LOWER(first_name || ' ' || last_name) LIKE ?", idFromQuery(query), pattern).
		Order("id").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Search runs the broader lookup across id and name permutations and
// returns every match with phones and emergency contacts attached.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Member, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var matches []models.Member
	if err := r.db.WithContext(ctx).
		Preload("Phones").
		Preload("EmergencyContacts").
		Where(
			"id = ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?"+
				" OR LOWER(first_name || ' ' || last_name) LIKE ?"+
				" OR LOWER(last_name || ' ' || first_name) LIKE ?",
			idFromQuery(query), pattern, pattern, pattern, pattern,
		).
		Order("id").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// FindByID loads a member by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new member row.
func (r *Repository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateEmail rewrites the member row's email.
func (r *Repository) UpdateEmail(ctx context.Context, id uint, email string) error {
	return r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		UpdateColumn("email", email).Error
}

// Count returns the total member count for the dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteDependents removes every row owned by the member in FK-safe
// order: checkins, phones, emergency contacts, payments, trainer
// assignments, then the exercise tree. The user row and the member row
// are handled by the caller inside the same transaction.
func (r *Repository) DeleteDependents(ctx context.Context, memberID uint) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("member_id = ?", memberID).Delete(&models.Checkin{}).Error; err != nil {
		return err
	}
	if err := tx.Where("member_id = ?", memberID).Delete(&models.PhoneNumber{}).Error; err != nil {
		return err
	}
	if err := tx.Where("member_id = ?", memberID).Delete(&models.EmergencyContact{}).Error; err != nil {
		return err
	}
	if err := tx.Where("member_id = ?", memberID).Delete(&models.Payment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("member_id = ?", memberID).Delete(&models.TrainerAssignment{}).Error; err != nil {
		return err
	}

	// exercise detail rows hang off exercises, deepest first
	if err := tx.Exec(
		"DELETE FROM runs WHERE exercise_id IN (SELECT id FROM exercises WHERE member_id = ?)",
		memberID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"DELETE FROM cardio_exercises WHERE exercise_id IN (SELECT id FROM exercises WHERE member_id = ?)",
		memberID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"DELETE FROM strength_exercises WHERE exercise_id IN (SELECT id FROM exercises WHERE member_id = ?)",
		memberID,
	).Error; err != nil {
		return err
	}
	return tx.Where("member_id = ?", memberID).Delete(&models.Exercise{}).Error
}

// Delete removes the member row itself.
func (r *Repository) Delete(ctx context.Context, memberID uint) error {
	return r.db.WithContext(ctx).Where("id = ?", memberID).Delete(&models.Member{}).Error
}

// AddPhone inserts a phone row owned by the member.
func (r *Repository) AddPhone(ctx context.Context, phone *models.PhoneNumber) (*models.PhoneNumber, error) {
	if err := r.db.WithContext(ctx).Create(phone).Error; err != nil {
		return nil, err
	}
	return phone, nil
}

// DeletePhone removes a phone scoped by both its id and the owning
// member id; scoping by id alone would allow cross-member tampering.
func (r *Repository) DeletePhone(ctx context.Context, memberID, phoneID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND member_id = ?", phoneID, memberID).
		Delete(&models.PhoneNumber{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddEmergencyContact inserts a contact row owned by the member.
func (r *Repository) AddEmergencyContact(ctx context.Context, contact *models.EmergencyContact) (*models.EmergencyContact, error) {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateEmergencyContact rewrites a contact scoped by id and member id.
func (r *Repository) UpdateEmergencyContact(ctx context.Context, memberID, contactID uint, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmergencyContact{}).
		Where("id = ? AND member_id = ?", contactID, memberID).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteEmergencyContact removes a contact scoped by id and member id.
func (r *Repository) DeleteEmergencyContact(ctx context.Context, memberID, contactID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND member_id = ?", contactID, memberID).
		Delete(&models.EmergencyContact{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
