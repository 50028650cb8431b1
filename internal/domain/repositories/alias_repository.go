package repositories

import (
	"context"

	"mercury-mail.backend/internal/domain/entities"
)

// AliasRepository maps email addresses to users. Address matching is
// case-insensitive.
type AliasRepository interface {
	Create(ctx context.Context, alias *entities.Alias) error
	ResolveAddress(ctx context.Context, address string) (*entities.Alias, error)
	ListByUserID(ctx context.Context, userID int64) ([]*entities.Alias, error)
}
