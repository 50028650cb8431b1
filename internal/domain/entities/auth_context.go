package entities

// AdminUserID is the sentinel identity of the bare admin secret when no
// impersonation target is named. Real user ids start at 1.
const AdminUserID int64 = -1

// AuthUser is the resolved identity behind a request credential.
type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthContext is the request-scoped result of authentication. It is
// never persisted; every request constructs a fresh one from its
// credential.
type AuthContext struct {
	User            AuthUser `json:"user"`
	IsImpersonating bool     `json:"isImpersonating"`
	Scopes          ScopeSet `json:"-"`
}

// IsAdmin reports whether the context carries the admin role, either
// directly or through impersonation of an admin user.
func (a *AuthContext) IsAdmin() bool {
	return a.User.Role == RoleAdmin
}

// HasScope reports whether the credential carries the scope.
func (a *AuthContext) HasScope(scope Scope) bool {
	return a.Scopes.Has(scope)
}
