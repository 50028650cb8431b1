package repositories

import (
	"context"

	"mercury-mail.backend/internal/domain/entities"
)

// OwnershipFilter narrows a single-row email lookup. A nil OwnerID
// means the caller bypasses the ownership boundary (admin).
type OwnershipFilter struct {
	OwnerID        *int64
	IncludeDeleted bool
}

// EmailRepository stores inbound mail.
type EmailRepository interface {
	Create(ctx context.Context, email *entities.Email) error
	// FindOwned returns the row matching id under the filter, or
	// ErrNotFound. Missing rows and ownership misses are
	// indistinguishable.
	FindOwned(ctx context.Context, id int64, filter OwnershipFilter) (*entities.Email, error)
	List(ctx context.Context, filter entities.ListEmailsFilter) ([]*entities.Email, int64, error)
	Update(ctx context.Context, id int64, input entities.UpdateEmailInput) error
	// SoftDelete stamps deleted_at and moves the row to trash.
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
	// Stats aggregates non-deleted mail, restricted to ownerID when
	// non-nil.
	Stats(ctx context.Context, ownerID *int64) (*entities.EmailStats, error)
}
