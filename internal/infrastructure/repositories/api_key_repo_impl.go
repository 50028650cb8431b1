package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations. Keys are never
// hard-deleted; revocation stamps revoked_at and every "active" query
// filters it out.
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create inserts a new key row and writes the generated id back.
func (r *ApiKeyRepository) Create(ctx context.Context, key *entities.ApiKey) error {
	m := &models.ApiKey{
		UserID:    key.UserID,
		Prefix:    key.Prefix,
		KeyHash:   key.KeyHash,
		Scopes:    key.Scopes,
		Name:      key.Name.Ptr(),
		ExpiresAt: key.ExpiresAt,
		CreatedAt: key.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	key.ID = m.ID
	key.CreatedAt = m.CreatedAt
	return nil
}

// FindActiveByHash looks up a non-revoked key by its SHA-256 hash.
func (r *ApiKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("key_hash = ? AND revoked_at IS NULL", keyHash).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m), nil
}

// FindActiveByID looks up a non-revoked key by id.
func (r *ApiKeyRepository) FindActiveByID(ctx context.Context, id int64) (*entities.ApiKey, error) {
	var m models.ApiKey
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND revoked_at IS NULL", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return apiKeyToEntity(&m), nil
}

// ListActive lists non-revoked keys, newest first, restricted to
// ownerID when non-nil.
func (r *ApiKeyRepository) ListActive(ctx context.Context, ownerID *int64) ([]*entities.ApiKey, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("revoked_at IS NULL").
		Order("created_at DESC")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	var keyModels []models.ApiKey
	if err := query.Find(&keyModels).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(keyModels))
	for i := range keyModels {
		keys = append(keys, apiKeyToEntity(&keyModels[i]))
	}
	return keys, nil
}

// CountActiveByUserID counts a user's non-revoked keys.
func (r *ApiKeyRepository) CountActiveByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TouchLastUsed stamps last_used_at on a key.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now().UTC()).Error
}

// Revoke stamps revoked_at on an active key. A second revoke matches no
// rows and reports ErrNotFound.
func (r *ApiKeyRepository) Revoke(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func apiKeyToEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:         m.ID,
		UserID:     m.UserID,
		Prefix:     m.Prefix,
		KeyHash:    m.KeyHash,
		Scopes:     m.Scopes,
		Name:       null.StringFromPtr(m.Name),
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		RevokedAt:  m.RevokedAt,
	}
}
