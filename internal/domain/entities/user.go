package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Role represents user roles
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// ParseRole validates a freeform role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleSystem:
		return Role(s), true
	default:
		return "", false
	}
}

// User represents a mailbox owner. Users are soft-deleted only; a
// deleted user is invisible to authentication and inbound routing.
type User struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      null.String `json:"name,omitempty"`
	Role      Role        `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	DeletedAt *time.Time  `json:"-"`
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
