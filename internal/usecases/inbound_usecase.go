package usecases

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/pkg/logger"
)

// InboundUsecase stores mail arriving from the upstream receiving
// pipeline and routes each message to an owner.
type InboundUsecase struct {
	emailRepo     repositories.EmailRepository
	aliasRepo     repositories.AliasRepository
	userRepo      repositories.UserRepository
	sharedMailbox string
}

// NewInboundUsecase creates a new inbound usecase.
func NewInboundUsecase(
	emailRepo repositories.EmailRepository,
	aliasRepo repositories.AliasRepository,
	userRepo repositories.UserRepository,
	sharedMailbox string,
) *InboundUsecase {
	return &InboundUsecase{
		emailRepo:     emailRepo,
		aliasRepo:     aliasRepo,
		userRepo:      userRepo,
		sharedMailbox: sharedMailbox,
	}
}

// Ingest stores one inbound message. Only callers holding the admin
// scope (the receiving pipeline authenticates with the admin secret)
// may ingest.
func (u *InboundUsecase) Ingest(ctx context.Context, auth *entities.AuthContext, input entities.InboundEmailInput) (*entities.Email, error) {
	if err := RequireScope(auth, entities.ScopeAdmin); err != nil {
		return nil, err
	}

	recipient := strings.ToLower(strings.TrimSpace(input.To))
	if recipient == "" {
		return nil, domainerrors.BadRequest("recipient is required")
	}
	sender := strings.TrimSpace(input.From)
	if sender == "" {
		return nil, domainerrors.BadRequest("sender is required")
	}

	messageID := strings.TrimSpace(input.MessageID)
	if messageID == "" {
		messageID = uuid.NewString()
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = "(no subject)"
	}

	email := &entities.Email{
		MessageID: messageID,
		Sender:    sender,
		Recipient: recipient,
		Subject:   subject,
		RawEmail:  input.Raw,
		Folder:    entities.FolderInbox,
		UserID:    u.resolveRecipient(ctx, recipient),
	}
	if len(input.Headers) > 0 {
		email.HeadersJSON = normalizeHeaders(input.Headers)
	}

	if err := u.emailRepo.Create(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

// resolveRecipient maps an address to an owner: exact alias match
// first, then the plus-address base, then the shared mailbox. A nil
// result leaves the message unrouted but stored.
func (u *InboundUsecase) resolveRecipient(ctx context.Context, recipient string) *int64 {
	if alias, err := u.aliasRepo.ResolveAddress(ctx, recipient); err == nil {
		return &alias.UserID
	}

	if base, ok := stripPlusTag(recipient); ok {
		if alias, err := u.aliasRepo.ResolveAddress(ctx, base); err == nil {
			return &alias.UserID
		}
	}

	if u.sharedMailbox != "" {
		if owner, err := u.userRepo.GetByEmail(ctx, u.sharedMailbox); err == nil {
			return &owner.ID
		}
	}

	logger.Warn(ctx, "inbound email did not match any mailbox",
		zap.String("recipient", recipient),
	)
	return nil
}

// stripPlusTag rewrites local+tag@domain to local@domain.
func stripPlusTag(address string) (string, bool) {
	at := strings.LastIndex(address, "@")
	if at <= 0 {
		return "", false
	}
	local, domain := address[:at], address[at:]
	plus := strings.Index(local, "+")
	if plus <= 0 {
		return "", false
	}
	return local[:plus] + domain, true
}

func normalizeHeaders(headers map[string]string) string {
	normalized := make(map[string]string, len(headers))
	for k, v := range headers {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	raw, err := json.Marshal(normalized)
	if err != nil {
		return ""
	}
	return string(raw)
}
