package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/pkg/crypto"
)

// ApiKeyUsecase manages the lifecycle of user API keys.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
}

// NewApiKeyUsecase creates a new API key usecase.
func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{apiKeyRepo: apiKeyRepo}
}

// Create mints a new key for the calling principal. The plaintext is
// returned exactly once and never stored.
func (u *ApiKeyUsecase) Create(ctx context.Context, auth *entities.AuthContext, input entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	if err := RequireScope(auth, entities.ScopeWrite); err != nil {
		return nil, err
	}

	scopes, err := u.resolveScopes(auth, input.Scopes)
	if err != nil {
		return nil, err
	}

	// Plain admin has no user row to attach the key to; impersonation
	// carries the target's real id, so admin-minted keys for a user land
	// on that user.
	var ownerID *int64
	if !auth.IsAdmin() || auth.IsImpersonating {
		if auth.User.ID <= 0 {
			return nil, domainerrors.BadRequest("api key must be associated with a user")
		}
		id := auth.User.ID
		ownerID = &id
	}

	if ownerID != nil {
		count, err := u.apiKeyRepo.CountActiveByUserID(ctx, *ownerID)
		if err != nil {
			return nil, err
		}
		if count >= entities.MaxActiveKeysPerUser {
			return nil, domainerrors.TooManyRequests("active api key limit reached")
		}
	}

	plaintext, prefix, err := crypto.GenerateKey()
	if err != nil {
		return nil, domainerrors.InternalError("failed to generate api key", err)
	}

	key := &entities.ApiKey{
		UserID:  ownerID,
		Prefix:  prefix,
		KeyHash: crypto.HashKey(plaintext),
		Scopes:  scopes.String(),
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		key.Name = null.StringFrom(name)
	}

	if err := u.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	return &entities.CreateApiKeyResponse{
		Key:    plaintext,
		Prefix: key.Prefix,
		Scopes: key.Scopes,
		Name:   key.Name,
	}, nil
}

func (u *ApiKeyUsecase) resolveScopes(auth *entities.AuthContext, raw string) (entities.ScopeSet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entities.DefaultKeyScopes(), nil
	}

	set := entities.NewScopeSet()
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		scope, err := entities.ParseScope(token)
		if err != nil {
			return nil, domainerrors.BadRequest("unknown scope: " + token)
		}
		if !auth.IsAdmin() {
			if !scope.IsUserGrantable() {
				return nil, domainerrors.Forbidden("invalid scope: " + token)
			}
			if !auth.HasScope(scope) {
				return nil, domainerrors.Forbidden("cannot grant scope: " + token)
			}
		}
		set.Add(scope)
	}
	if len(set) == 0 {
		return entities.DefaultKeyScopes(), nil
	}
	return set, nil
}

// List returns the caller's active keys; admin sees all active keys.
// Hashes never leave the repository layer in serialized form.
func (u *ApiKeyUsecase) List(ctx context.Context, auth *entities.AuthContext) ([]*entities.ApiKey, error) {
	if err := RequireScope(auth, entities.ScopeRead); err != nil {
		return nil, err
	}

	var ownerID *int64
	if !auth.IsAdmin() {
		id := auth.User.ID
		ownerID = &id
	}
	return u.apiKeyRepo.ListActive(ctx, ownerID)
}

// Revoke permanently deactivates a key. A key outside the caller's
// ownership, already revoked, or absent is reported identically as not
// found.
func (u *ApiKeyUsecase) Revoke(ctx context.Context, auth *entities.AuthContext, id int64) error {
	if err := RequireScope(auth, entities.ScopeWrite); err != nil {
		return err
	}

	if !auth.IsAdmin() {
		key, err := u.apiKeyRepo.FindActiveByID(ctx, id)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("api key not found")
			}
			return err
		}
		if key.UserID == nil || *key.UserID != auth.User.ID {
			return domainerrors.NotFound("api key not found")
		}
	}

	if err := u.apiKeyRepo.Revoke(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("api key not found")
		}
		return err
	}
	return nil
}
