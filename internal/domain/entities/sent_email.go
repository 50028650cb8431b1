package entities

import "time"

// SendStatus is the outcome recorded for an outbound delivery attempt.
type SendStatus string

const (
	SendStatusSent  SendStatus = "sent"
	SendStatusError SendStatus = "error"
)

// SentEmail is the audit record of an outbound delivery attempt,
// successful or not.
type SentEmail struct {
	ID        int64      `json:"id"`
	MessageID *string    `json:"messageId,omitempty"`
	Sender    string     `json:"sender"`
	Recipient string     `json:"recipient"`
	Subject   string     `json:"subject"`
	HTML      *string    `json:"html,omitempty"`
	Text      *string    `json:"text,omitempty"`
	Status    SendStatus `json:"status"`
	Error     *string    `json:"error,omitempty"`
	SentAt    time.Time  `json:"sentAt"`
}

// SendEmailInput is the caller-facing outbound send request.
type SendEmailInput struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	From    string `json:"from"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// OutboundMessage is the payload handed to the mail provider.
type OutboundMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

// SendResult is the provider's verdict on a delivery attempt.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    int    `json:"status,omitempty"`
}
