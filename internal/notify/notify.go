package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers a short notification about a state change.
// Callers treat delivery as best effort.
type Notifier interface {
	Send(ctx context.Context, subject, message string) error
}

// Message is a single notification as handed to a delivery channel.
type Message struct {
	// ID uniquely identifies this notification across all channels
	ID uuid.UUID `json:"id"`

	Subject string `json:"subject"`
	Body    string `json:"body"`

	// CreatedAt is the timestamp when the notification was raised
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a Message with a fresh id.
func NewMessage(subject, body string) Message {
	return Message{
		ID:        uuid.New(),
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// LogValue implements slog.LogValuer.
func (m Message) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", m.ID.String()),
		slog.String("subject", m.Subject),
		slog.String("body", m.Body),
	)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, subject, message string) error

// Send implements Notifier.
func (f NotifierFunc) Send(ctx context.Context, subject, message string) error {
	return f(ctx, subject, message)
}
