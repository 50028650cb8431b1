package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/interfaces/http/response"
)

// AuthContextKey is the gin context key holding the resolved
// AuthContext.
const AuthContextKey = "auth_context"

// ImpersonationHeader names the user a caller holding the admin secret
// acts as. It is ignored on every other credential.
const ImpersonationHeader = "X-Mercury-User"

// Authenticator resolves a bearer token into an AuthContext.
type Authenticator interface {
	Authenticate(ctx context.Context, token, impersonateEmail string) (*entities.AuthContext, error)
}

// AuthMiddleware authenticates every request on the protected router
// group. Requests without a resolvable credential are rejected before
// any handler runs.
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		authCtx, err := authenticator.Authenticate(
			c.Request.Context(),
			token,
			c.GetHeader(ImpersonationHeader),
		)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(AuthContextKey, authCtx)
		c.Next()
	}
}

// RequireScope gates a route group on a scope. It assumes
// AuthMiddleware already ran.
func RequireScope(scope entities.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			response.Error(c, domainerrors.Unauthorized("unauthorized"))
			c.Abort()
			return
		}
		if !authCtx.HasScope(scope) {
			response.Error(c, domainerrors.Forbidden("forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAuthContext retrieves the AuthContext set by AuthMiddleware.
func GetAuthContext(c *gin.Context) (*entities.AuthContext, bool) {
	value, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}
	authCtx, ok := value.(*entities.AuthContext)
	return authCtx, ok
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
