package repositories

import (
	"context"

	"mercury-mail.backend/internal/domain/entities"
)

// UserRepository provides access to mailbox owners. All lookups exclude
// soft-deleted users.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	SoftDelete(ctx context.Context, id int64) error
}
