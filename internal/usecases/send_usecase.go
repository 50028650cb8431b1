package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/pkg/logger"
)

// MailProvider delivers outbound mail. Provider-level rejections come
// back inside the result; only transport failures surface as an error.
type MailProvider interface {
	Send(ctx context.Context, msg *entities.OutboundMessage) (*entities.SendResult, error)
}

// SendUsecase delivers outbound mail and records every attempt in the
// audit log, success or failure.
type SendUsecase struct {
	aliasRepo     repositories.AliasRepository
	sentEmailRepo repositories.SentEmailRepository
	provider      MailProvider
	defaultFrom   string
}

// NewSendUsecase creates a new send usecase.
func NewSendUsecase(
	aliasRepo repositories.AliasRepository,
	sentEmailRepo repositories.SentEmailRepository,
	provider MailProvider,
	defaultFrom string,
) *SendUsecase {
	return &SendUsecase{
		aliasRepo:     aliasRepo,
		sentEmailRepo: sentEmailRepo,
		provider:      provider,
		defaultFrom:   defaultFrom,
	}
}

// SendEmailOutput reports a successful delivery.
type SendEmailOutput struct {
	MessageID string `json:"messageId"`
}

// Send validates, delivers, and audits one outbound message. A
// non-admin caller naming an explicit from address must own an alias
// for it.
func (u *SendUsecase) Send(ctx context.Context, auth *entities.AuthContext, input entities.SendEmailInput) (*SendEmailOutput, error) {
	if err := RequireScope(auth, entities.ScopeSend); err != nil {
		return nil, err
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		return nil, domainerrors.BadRequest("recipient is required")
	}
	if !emailPattern.MatchString(to) {
		return nil, domainerrors.BadRequest("invalid recipient address")
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, domainerrors.BadRequest("subject is required")
	}
	if strings.TrimSpace(input.HTML) == "" && strings.TrimSpace(input.Text) == "" {
		return nil, domainerrors.BadRequest("html or text body is required")
	}

	from := strings.TrimSpace(input.From)
	if from == "" {
		from = u.defaultFrom
	} else if !auth.IsAdmin() {
		alias, err := u.aliasRepo.ResolveAddress(ctx, from)
		if err != nil || alias.UserID != auth.User.ID {
			return nil, domainerrors.Forbidden("from address not allowed")
		}
	}

	msg := &entities.OutboundMessage{
		To:      to,
		Subject: subject,
		From:    from,
		HTML:    input.HTML,
		Text:    input.Text,
	}

	result, err := u.provider.Send(ctx, msg)
	if err != nil {
		u.audit(ctx, msg, nil, err.Error())
		return nil, domainerrors.BadGateway("mail provider unreachable", err)
	}
	if !result.Success {
		u.audit(ctx, msg, nil, result.Error)
		return nil, domainerrors.BadGateway("mail provider rejected message: "+result.Error, nil)
	}

	u.audit(ctx, msg, &result.MessageID, "")
	return &SendEmailOutput{MessageID: result.MessageID}, nil
}

// audit records the attempt. The audit row is best-effort; losing it
// must not turn a delivered message into a failed request.
func (u *SendUsecase) audit(ctx context.Context, msg *entities.OutboundMessage, messageID *string, sendErr string) {
	sent := &entities.SentEmail{
		MessageID: messageID,
		Sender:    msg.From,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Status:    entities.SendStatusSent,
	}
	if msg.HTML != "" {
		html := msg.HTML
		sent.HTML = &html
	}
	if msg.Text != "" {
		text := msg.Text
		sent.Text = &text
	}
	if sendErr != "" {
		sent.Status = entities.SendStatusError
		sent.Error = &sendErr
	}

	if err := u.sentEmailRepo.Create(ctx, sent); err != nil {
		logger.Error(ctx, "failed to record sent email",
			zap.String("recipient", msg.To),
			zap.Error(err),
		)
	}
}
