package repositories

import (
	"context"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new admin account
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return mapDatabaseError(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username, soft deleted rows included so a
// reset can revive them
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Unscoped().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves a user, clearing any soft delete marker
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return mapDatabaseError(r.db.WithContext(ctx).Unscoped().Save(user).Error)
}

// CountByRole counts active accounts with the given role
func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_active = ?", role, true).
		Count(&count).Error
	return count, err
}

// DeleteExcept soft deletes every account but keepID
func (r *userRepository) DeleteExcept(ctx context.Context, keepID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id <> ?", keepID).Delete(&models.User{})
	return result.RowsAffected, result.Error
}
