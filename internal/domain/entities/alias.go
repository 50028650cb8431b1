package entities

import "time"

// Alias maps an email address to a user. Multiple aliases may point at
// one user; an address is unique across all aliases. Aliases are used
// for inbound routing and for outbound "from" ownership checks.
type Alias struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Address   string    `json:"address"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}
