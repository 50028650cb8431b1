package usecases

import (
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
)

// RequireScope rejects a context that does not carry the scope. Pure;
// no I/O.
func RequireScope(auth *entities.AuthContext, scope entities.Scope) error {
	if auth == nil || !auth.HasScope(scope) {
		return domainerrors.Forbidden("forbidden")
	}
	return nil
}
