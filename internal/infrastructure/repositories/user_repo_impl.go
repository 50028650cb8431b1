package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. The generated id is written back into the
// entity.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		Email:     user.Email,
		Name:      user.Name.Ptr(),
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a non-deleted user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a non-deleted user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// List lists non-deleted users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at ASC").Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      null.StringFromPtr(m.Name),
		Role:      entities.Role(m.Role),
		CreatedAt: m.CreatedAt,
	}
}
