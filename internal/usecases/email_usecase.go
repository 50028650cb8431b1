package usecases

import (
	"context"
	"errors"
	"strings"

	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/pkg/utils"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// EmailUsecase reads and mutates stored mail. Every single-row
// operation goes through requireOwned so a non-admin caller can never
// distinguish "not mine" from "does not exist".
type EmailUsecase struct {
	emailRepo repositories.EmailRepository
}

// NewEmailUsecase creates a new email usecase.
func NewEmailUsecase(emailRepo repositories.EmailRepository) *EmailUsecase {
	return &EmailUsecase{emailRepo: emailRepo}
}

// ListEmailsInput narrows a listing. Recipient and UserID are honored
// only for admin callers; non-admin listings are pinned to the caller.
type ListEmailsInput struct {
	Folder     string
	UnreadOnly bool
	Since      string
	Unsynced   bool
	Limit      int
	Offset     int
	Recipient  string
	UserID     *int64
}

// List returns a page of mail plus the total count under the filter.
func (u *EmailUsecase) List(ctx context.Context, auth *entities.AuthContext, input ListEmailsInput) ([]*entities.Email, int64, error) {
	if err := RequireScope(auth, entities.ScopeRead); err != nil {
		return nil, 0, err
	}

	folder := entities.FolderInbox
	if raw := strings.TrimSpace(input.Folder); raw != "" {
		parsed, ok := entities.ParseFolder(raw)
		if !ok {
			return nil, 0, domainerrors.BadRequest("invalid folder: " + raw)
		}
		folder = parsed
	}

	page := utils.NormalizePagination(input.Limit, input.Offset, defaultListLimit, maxListLimit)

	filter := entities.ListEmailsFilter{
		Folder:     folder,
		UnreadOnly: input.UnreadOnly,
		Since:      strings.TrimSpace(input.Since),
		Unsynced:   input.Unsynced,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if auth.IsAdmin() {
		filter.Recipient = strings.ToLower(strings.TrimSpace(input.Recipient))
		filter.UserID = input.UserID
	} else {
		id := auth.User.ID
		filter.UserID = &id
	}

	return u.emailRepo.List(ctx, filter)
}

// Get returns a single owned email.
func (u *EmailUsecase) Get(ctx context.Context, auth *entities.AuthContext, id int64) (*entities.Email, error) {
	if err := RequireScope(auth, entities.ScopeRead); err != nil {
		return nil, err
	}
	return u.requireOwned(ctx, auth, id, false)
}

// Update mutates read/starred/folder/synced state on an owned email.
func (u *EmailUsecase) Update(ctx context.Context, auth *entities.AuthContext, id int64, input entities.UpdateEmailInput) (*entities.Email, error) {
	if err := RequireScope(auth, entities.ScopeWrite); err != nil {
		return nil, err
	}

	if input.IsRead == nil && input.IsStarred == nil && input.Folder == nil && !input.MarkSynced {
		return nil, domainerrors.BadRequest("no valid fields to update")
	}
	if input.Folder != nil {
		if _, ok := entities.ParseFolder(*input.Folder); !ok {
			return nil, domainerrors.BadRequest("invalid folder: " + *input.Folder)
		}
	}

	if _, err := u.requireOwned(ctx, auth, id, false); err != nil {
		return nil, err
	}
	if err := u.emailRepo.Update(ctx, id, input); err != nil {
		return nil, err
	}
	return u.emailRepo.FindOwned(ctx, id, repositories.OwnershipFilter{})
}

// Delete moves an owned email to trash, or with permanent set removes
// the row outright. Permanent delete also reaches rows already in the
// trash.
func (u *EmailUsecase) Delete(ctx context.Context, auth *entities.AuthContext, id int64, permanent bool) error {
	if err := RequireScope(auth, entities.ScopeWrite); err != nil {
		return err
	}

	if _, err := u.requireOwned(ctx, auth, id, permanent); err != nil {
		return err
	}
	if permanent {
		return u.emailRepo.HardDelete(ctx, id)
	}
	return u.emailRepo.SoftDelete(ctx, id)
}

// Stats aggregates the caller's mailbox; admin sees global totals.
func (u *EmailUsecase) Stats(ctx context.Context, auth *entities.AuthContext) (*entities.EmailStats, error) {
	if err := RequireScope(auth, entities.ScopeRead); err != nil {
		return nil, err
	}

	var ownerID *int64
	if !auth.IsAdmin() {
		id := auth.User.ID
		ownerID = &id
	}
	return u.emailRepo.Stats(ctx, ownerID)
}

func (u *EmailUsecase) requireOwned(ctx context.Context, auth *entities.AuthContext, id int64, includeDeleted bool) (*entities.Email, error) {
	filter := repositories.OwnershipFilter{IncludeDeleted: includeDeleted}
	if !auth.IsAdmin() {
		ownerID := auth.User.ID
		filter.OwnerID = &ownerID
	}

	email, err := u.emailRepo.FindOwned(ctx, id, filter)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("email not found")
		}
		return nil, err
	}
	return email, nil
}
