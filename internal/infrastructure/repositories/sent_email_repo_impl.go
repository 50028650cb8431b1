package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"mercury-mail.backend/internal/domain/entities"
	"mercury-mail.backend/internal/infrastructure/models"
)

// SentEmailRepository implements the outbound delivery audit log.
type SentEmailRepository struct {
	db *gorm.DB
}

// NewSentEmailRepository creates a new sent email repository
func NewSentEmailRepository(db *gorm.DB) *SentEmailRepository {
	return &SentEmailRepository{db: db}
}

// Create records a delivery attempt.
func (r *SentEmailRepository) Create(ctx context.Context, sent *entities.SentEmail) error {
	m := &models.SentEmail{
		MessageID: sent.MessageID,
		Sender:    sent.Sender,
		Recipient: sent.Recipient,
		Subject:   sent.Subject,
		HTML:      sent.HTML,
		Text:      sent.Text,
		Status:    string(sent.Status),
		Error:     sent.Error,
		SentAt:    sent.SentAt,
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	sent.ID = m.ID
	sent.SentAt = m.SentAt
	return nil
}
