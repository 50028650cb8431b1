package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	domainRepos "mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/internal/infrastructure/models"
)

// EmailRepository implements email data operations
type EmailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new email repository
func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// Create stores an inbound email.
func (r *EmailRepository) Create(ctx context.Context, email *entities.Email) error {
	m := &models.Email{
		MessageID:   email.MessageID,
		Sender:      email.Sender,
		Recipient:   email.Recipient,
		Subject:     email.Subject,
		RawEmail:    email.RawEmail,
		HeadersJSON: email.HeadersJSON,
		Folder:      string(email.Folder),
		IsRead:      email.IsRead,
		IsStarred:   email.IsStarred,
		UserID:      email.UserID,
		ReceivedAt:  email.ReceivedAt,
	}
	if m.Folder == "" {
		m.Folder = string(entities.FolderInbox)
	}
	if m.ReceivedAt.IsZero() {
		m.ReceivedAt = time.Now().UTC()
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	email.ID = m.ID
	email.ReceivedAt = m.ReceivedAt
	email.Folder = entities.Folder(m.Folder)
	return nil
}

// FindOwned returns the single row matching id under the ownership
// filter. A row owned by someone else and a row that does not exist
// produce the same ErrNotFound.
func (r *EmailRepository) FindOwned(ctx context.Context, id int64, filter domainRepos.OwnershipFilter) (*entities.Email, error) {
	query := GetDB(ctx, r.db).WithContext(ctx)
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	query = query.Where("id = ?", id)
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}

	var m models.Email
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return emailToEntity(&m), nil
}

// List returns a page of non-deleted emails plus the total count under
// the same conditions.
func (r *EmailRepository) List(ctx context.Context, filter entities.ListEmailsFilter) ([]*entities.Email, int64, error) {
	base := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Email{})

	if filter.Folder != "" {
		base = base.Where("folder = ?", string(filter.Folder))
	}
	if filter.UserID != nil {
		base = base.Where("user_id = ?", *filter.UserID)
	}
	if filter.Recipient != "" {
		base = base.Where("recipient = ?", filter.Recipient)
	}
	if filter.UnreadOnly {
		base = base.Where("is_read = ?", false)
	}
	if filter.Since != "" {
		base = base.Where("received_at > ?", filter.Since)
	}
	if filter.Unsynced {
		base = base.Where("synced_at IS NULL")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emailModels []models.Email
	err := base.Session(&gorm.Session{}).
		Order("received_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&emailModels).Error
	if err != nil {
		return nil, 0, err
	}

	emails := make([]*entities.Email, 0, len(emailModels))
	for i := range emailModels {
		emails = append(emails, emailToEntity(&emailModels[i]))
	}
	return emails, total, nil
}

// Update applies the mutable fields present in the input.
func (r *EmailRepository) Update(ctx context.Context, id int64, input entities.UpdateEmailInput) error {
	updates := map[string]interface{}{}
	if input.IsRead != nil {
		updates["is_read"] = *input.IsRead
	}
	if input.IsStarred != nil {
		updates["is_starred"] = *input.IsStarred
	}
	if input.Folder != nil {
		updates["folder"] = *input.Folder
	}
	if input.MarkSynced {
		updates["synced_at"] = time.Now().UTC()
	}
	if len(updates) == 0 {
		return nil
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Email{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at and moves the row to trash.
func (r *EmailRepository) SoftDelete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Email{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": time.Now().UTC(),
			"folder":     string(entities.FolderTrash),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// HardDelete permanently removes a row, deleted or not.
func (r *EmailRepository) HardDelete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Unscoped().
		Delete(&models.Email{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Stats aggregates non-deleted mail, restricted to ownerID when
// non-nil.
func (r *EmailRepository) Stats(ctx context.Context, ownerID *int64) (*entities.EmailStats, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Email{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	var stats entities.EmailStats
	err := query.
		Select(
			"COUNT(*) AS total",
			"SUM(CASE WHEN is_read THEN 0 ELSE 1 END) AS unread",
			"SUM(CASE WHEN is_starred THEN 1 ELSE 0 END) AS starred",
			"SUM(CASE WHEN folder = 'inbox' THEN 1 ELSE 0 END) AS inbox",
			"SUM(CASE WHEN folder = 'trash' THEN 1 ELSE 0 END) AS trash",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func emailToEntity(m *models.Email) *entities.Email {
	e := &entities.Email{
		ID:          m.ID,
		MessageID:   m.MessageID,
		Sender:      m.Sender,
		Recipient:   m.Recipient,
		Subject:     m.Subject,
		RawEmail:    m.RawEmail,
		HeadersJSON: m.HeadersJSON,
		Folder:      entities.Folder(m.Folder),
		IsRead:      m.IsRead,
		IsStarred:   m.IsStarred,
		UserID:      m.UserID,
		ReceivedAt:  m.ReceivedAt,
		SyncedAt:    m.SyncedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	return e
}
