package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send an announcement email via an
// external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "ShowSpace <noreply@showspace.example>")
	Subject string
	HTML    string // HTML body
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending announcement emails via an external
// provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
