package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic multi-statement
// operations: every write inside fn is applied or none are.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
