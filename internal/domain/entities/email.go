package entities

import "time"

// Folder is the closed set of mailbox folders.
type Folder string

const (
	FolderInbox   Folder = "inbox"
	FolderTrash   Folder = "trash"
	FolderArchive Folder = "archive"
	FolderSent    Folder = "sent"
	FolderDrafts  Folder = "drafts"
)

// ParseFolder validates a freeform folder string.
func ParseFolder(s string) (Folder, bool) {
	switch Folder(s) {
	case FolderInbox, FolderTrash, FolderArchive, FolderSent, FolderDrafts:
		return Folder(s), true
	default:
		return "", false
	}
}

// Email is a stored inbound message. UserID is nil when no alias or
// shared mailbox matched the recipient at ingest time.
type Email struct {
	ID          int64      `json:"id"`
	MessageID   string     `json:"messageId"`
	Sender      string     `json:"sender"`
	Recipient   string     `json:"recipient"`
	Subject     string     `json:"subject"`
	RawEmail    string     `json:"rawEmail,omitempty"`
	HeadersJSON string     `json:"headersJson,omitempty"`
	Folder      Folder     `json:"folder"`
	IsRead      bool       `json:"isRead"`
	IsStarred   bool       `json:"isStarred"`
	UserID      *int64     `json:"userId,omitempty"`
	ReceivedAt  time.Time  `json:"receivedAt"`
	SyncedAt    *time.Time `json:"syncedAt,omitempty"`
	DeletedAt   *time.Time `json:"-"`
}

// InboundEmailInput is the JSON form of an inbound message after the
// upstream transformation.
type InboundEmailInput struct {
	MessageID string            `json:"messageId"`
	From      string            `json:"from" binding:"required"`
	To        string            `json:"to" binding:"required"`
	Subject   string            `json:"subject"`
	Raw       string            `json:"raw"`
	Headers   map[string]string `json:"headers"`
}

// UpdateEmailInput carries the mutable fields of a stored email.
// Pointer fields distinguish "absent" from zero values.
type UpdateEmailInput struct {
	IsRead     *bool   `json:"is_read"`
	IsStarred  *bool   `json:"is_starred"`
	Folder     *string `json:"folder"`
	MarkSynced bool    `json:"mark_synced"`
}

// ListEmailsFilter narrows an email listing.
type ListEmailsFilter struct {
	UserID     *int64
	Recipient  string
	Folder     Folder
	UnreadOnly bool
	Since      string
	Unsynced   bool
	Limit      int
	Offset     int
}

// EmailStats aggregates a mailbox.
type EmailStats struct {
	Total   int64 `json:"total"`
	Unread  int64 `json:"unread"`
	Starred int64 `json:"starred"`
	Inbox   int64 `json:"inbox"`
	Trash   int64 `json:"trash"`
}
