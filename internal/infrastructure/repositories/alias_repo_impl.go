package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/infrastructure/models"
)

// AliasRepository implements alias data operations
type AliasRepository struct {
	db *gorm.DB
}

// NewAliasRepository creates a new alias repository
func NewAliasRepository(db *gorm.DB) *AliasRepository {
	return &AliasRepository{db: db}
}

// Create creates a new alias. Addresses are stored lowercased.
func (r *AliasRepository) Create(ctx context.Context, alias *entities.Alias) error {
	m := &models.UserAlias{
		UserID:    alias.UserID,
		Address:   strings.ToLower(strings.TrimSpace(alias.Address)),
		IsPrimary: alias.IsPrimary,
		CreatedAt: alias.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	alias.ID = m.ID
	alias.Address = m.Address
	alias.CreatedAt = m.CreatedAt
	return nil
}

// ResolveAddress finds the alias owning an address, case-insensitively.
func (r *AliasRepository) ResolveAddress(ctx context.Context, address string) (*entities.Alias, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))

	var m models.UserAlias
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("LOWER(address) = ?", normalized).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return aliasToEntity(&m), nil
}

// ListByUserID lists a user's aliases, primary first.
func (r *AliasRepository) ListByUserID(ctx context.Context, userID int64) ([]*entities.Alias, error) {
	var aliasModels []models.UserAlias
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&aliasModels).Error
	if err != nil {
		return nil, err
	}

	aliases := make([]*entities.Alias, 0, len(aliasModels))
	for i := range aliasModels {
		aliases = append(aliases, aliasToEntity(&aliasModels[i]))
	}
	return aliases, nil
}

func aliasToEntity(m *models.UserAlias) *entities.Alias {
	return &entities.Alias{
		ID:        m.ID,
		UserID:    m.UserID,
		Address:   m.Address,
		IsPrimary: m.IsPrimary,
		CreatedAt: m.CreatedAt,
	}
}
