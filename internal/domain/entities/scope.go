package entities

import (
	"fmt"
	"sort"
	"strings"
)

// Scope is a named capability token granting permission to perform a
// class of operation.
type Scope string

const (
	ScopeRead  Scope = "read"
	ScopeWrite Scope = "write"
	ScopeSend  Scope = "send"
	// ScopeAdmin is reserved for the admin secret and impersonation path;
	// users can never grant it to their own keys.
	ScopeAdmin Scope = "admin"
)

var userGrantableScopes = map[Scope]struct{}{
	ScopeRead:  {},
	ScopeWrite: {},
	ScopeSend:  {},
}

// ParseScope converts a freeform token into a validated Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.TrimSpace(s)) {
	case ScopeRead:
		return ScopeRead, nil
	case ScopeWrite:
		return ScopeWrite, nil
	case ScopeSend:
		return ScopeSend, nil
	case ScopeAdmin:
		return ScopeAdmin, nil
	default:
		return "", fmt.Errorf("unknown scope: %q", s)
	}
}

// IsUserGrantable reports whether a user may request this scope for
// their own API keys.
func (s Scope) IsUserGrantable() bool {
	_, ok := userGrantableScopes[s]
	return ok
}

// ScopeSet is the resolved capability set of a credential.
type ScopeSet map[Scope]struct{}

// NewScopeSet builds a set from the given scopes.
func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return set
}

// AdminScopes returns the full scope set carried by the admin secret.
func AdminScopes() ScopeSet {
	return NewScopeSet(ScopeRead, ScopeWrite, ScopeSend, ScopeAdmin)
}

// DefaultKeyScopes is the scope set applied when key creation omits
// scopes entirely.
func DefaultKeyScopes() ScopeSet {
	return NewScopeSet(ScopeRead, ScopeWrite, ScopeSend)
}

// ParseScopeSet splits a stored comma-separated scope string into a
// set. Whitespace around tokens is trimmed and empty tokens are
// dropped; an empty input yields an empty set. Callers apply their own
// default-scope policy.
func ParseScopeSet(raw string) ScopeSet {
	set := make(ScopeSet)
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		set[Scope(token)] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the scope.
func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// Add inserts the scope into the set.
func (s ScopeSet) Add(scope Scope) {
	s[scope] = struct{}{}
}

// Slice returns the scopes sorted lexicographically.
func (s ScopeSet) Slice() []Scope {
	out := make([]Scope, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String serializes the set to the stored comma-separated form.
func (s ScopeSet) String() string {
	parts := make([]string, 0, len(s))
	for _, scope := range s.Slice() {
		parts = append(parts, string(scope))
	}
	return strings.Join(parts, ",")
}
