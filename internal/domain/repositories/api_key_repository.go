package repositories

import (
	"context"

	"mercury-mail.backend/internal/domain/entities"
)

// ApiKeyRepository stores per-user credentials. "Active" means not yet
// revoked; revoked rows are retained forever and excluded from every
// active query.
type ApiKeyRepository interface {
	Create(ctx context.Context, key *entities.ApiKey) error
	FindActiveByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindActiveByID(ctx context.Context, id int64) (*entities.ApiKey, error)
	// ListActive returns non-revoked keys, restricted to ownerID when
	// non-nil.
	ListActive(ctx context.Context, ownerID *int64) ([]*entities.ApiKey, error)
	CountActiveByUserID(ctx context.Context, userID int64) (int64, error)
	// TouchLastUsed stamps last_used_at; callers treat failures as
	// best-effort.
	TouchLastUsed(ctx context.Context, id int64) error
	// Revoke sets revoked_at on an active key. Revoking an already
	// revoked key reports ErrNotFound.
	Revoke(ctx context.Context, id int64) error
}
