package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/pkg/crypto"
	"mercury-mail.backend/pkg/logger"
)

// AuthUsecase resolves a request credential to an AuthContext. A
// request authenticates as exactly one of: the admin secret (optionally
// impersonating a named user), a user API key, or nothing.
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	apiKeyRepo  repositories.ApiKeyRepository
	adminSecret string
	now         func() time.Time
}

// NewAuthUsecase creates a new auth usecase. The admin secret comes
// from explicit configuration, never ambient state.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	apiKeyRepo repositories.ApiKeyRepository,
	adminSecret string,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		apiKeyRepo:  apiKeyRepo,
		adminSecret: adminSecret,
		now:         time.Now,
	}
}

// Authenticate resolves a bearer token, plus the optional impersonation
// header value, into an AuthContext. Every failure collapses into the
// same unauthorized error so a caller can never learn why a token was
// rejected.
func (u *AuthUsecase) Authenticate(ctx context.Context, token, impersonateEmail string) (*entities.AuthContext, error) {
	if token == "" {
		return nil, domainerrors.Unauthorized("unauthorized")
	}

	if u.adminSecret != "" && crypto.ConstantTimeEqual(token, u.adminSecret) {
		return u.authenticateAdmin(ctx, impersonateEmail)
	}

	// SECURITY: user API keys intentionally do not support the
	// impersonation header. Only the admin secret can impersonate.
	if strings.HasPrefix(token, crypto.KeyMarker) {
		return u.authenticateUserKey(ctx, token)
	}

	return nil, domainerrors.Unauthorized("unauthorized")
}

func (u *AuthUsecase) authenticateAdmin(ctx context.Context, impersonateEmail string) (*entities.AuthContext, error) {
	target := strings.TrimSpace(impersonateEmail)
	if target == "" {
		return &entities.AuthContext{
			User: entities.AuthUser{
				ID:    entities.AdminUserID,
				Email: "admin",
				Role:  entities.RoleAdmin,
			},
			IsImpersonating: false,
			Scopes:          entities.AdminScopes(),
		}, nil
	}

	// A named impersonation target that does not resolve hard-fails the
	// whole authentication; it must not silently fall back to plain
	// admin.
	user, err := u.userRepo.GetByEmail(ctx, target)
	if err != nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}

	return &entities.AuthContext{
		User: entities.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
		IsImpersonating: true,
		Scopes:          entities.AdminScopes(),
	}, nil
}

func (u *AuthUsecase) authenticateUserKey(ctx context.Context, token string) (*entities.AuthContext, error) {
	hash := crypto.HashKey(token)

	key, err := u.apiKeyRepo.FindActiveByHash(ctx, hash)
	if err != nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}

	// Expiry fails closed.
	if key.ExpiresAt != nil && !key.ExpiresAt.After(u.now()) {
		return nil, domainerrors.Unauthorized("unauthorized")
	}

	if key.UserID == nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}
	user, err := u.userRepo.GetByID(ctx, *key.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}

	// Audit trail only; a failure here must never fail or delay the
	// authentication itself.
	u.touchLastUsed(ctx, key.ID)

	return &entities.AuthContext{
		User: entities.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
		IsImpersonating: false,
		Scopes:          key.ScopeSet(),
	}, nil
}

func (u *AuthUsecase) touchLastUsed(ctx context.Context, keyID int64) {
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		timeoutCtx, cancel := context.WithTimeout(bgCtx, 5*time.Second)
		defer cancel()
		if err := u.apiKeyRepo.TouchLastUsed(timeoutCtx, keyID); err != nil {
			logger.Warn(timeoutCtx, "failed to update api key last_used_at",
				zap.Int64("api_key_id", keyID),
				zap.Error(err),
			)
		}
	}()
}
