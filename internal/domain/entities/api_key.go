package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// MaxActiveKeysPerUser caps the number of non-revoked keys a single
// owner may hold at any time.
const MaxActiveKeysPerUser = 10

// ApiKey is a stored per-user credential. The plaintext key is never
// persisted; only its SHA-256 hash and the short public prefix survive
// creation.
type ApiKey struct {
	ID         int64       `json:"id"`
	UserID     *int64      `json:"userId,omitempty"`
	Prefix     string      `json:"prefix"`
	KeyHash    string      `json:"-"`
	Scopes     string      `json:"scopes"`
	Name       null.String `json:"name,omitempty"`
	LastUsedAt *time.Time  `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time  `json:"expiresAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	RevokedAt  *time.Time  `json:"-"`
}

// ScopeSet parses the stored scope string.
func (k *ApiKey) ScopeSet() ScopeSet {
	return ParseScopeSet(k.Scopes)
}

// CreateApiKeyInput represents input for minting a new key.
type CreateApiKeyInput struct {
	Name   string `json:"name"`
	Scopes string `json:"scopes"`
}

// CreateApiKeyResponse carries the plaintext key exactly once, at
// creation time.
type CreateApiKeyResponse struct {
	Key    string      `json:"key"`
	Prefix string      `json:"prefix"`
	Scopes string      `json:"scopes"`
	Name   null.String `json:"name,omitempty"`
}
