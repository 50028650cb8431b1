package repositories

import (
	"context"

	"mercury-mail.backend/internal/domain/entities"
)

// SentEmailRepository records outbound delivery attempts.
type SentEmailRepository interface {
	Create(ctx context.Context, sent *entities.SentEmail) error
}
