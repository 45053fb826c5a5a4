package notify

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/redact"
)

// Dispatcher fans a notification out to every configured Notifier.
// It is itself a Notifier, so services never know how many channels exist.
// The channel set is fixed at construction.
type Dispatcher struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher delivering to the given notifiers.
// If logger is nil, a default logger will be used.
func NewDispatcher(logger *slog.Logger, notifiers ...Notifier) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		notifiers: append(make([]Notifier, 0, len(notifiers)), notifiers...),
		logger:    logger.With(slog.String("component", "notification_dispatcher")),
	}
}

// Ensure Dispatcher implements Notifier interface
var _ Notifier = (*Dispatcher)(nil)

// Send delivers to every notifier, continuing past failures, and returns
// the first error encountered.
func (d *Dispatcher) Send(ctx context.Context, subject, message string) error {
	if len(d.notifiers) == 0 {
		d.logger.Warn("no notifiers configured", slog.String("subject", subject))
		return nil
	}

	var firstErr error
	for i, n := range d.notifiers {
		if err := n.Send(ctx, subject, message); err != nil {
			d.logger.Error("notifier failed to deliver",
				slog.String("error", redact.Error(err)),
				slog.Int("notifier_index", i),
				slog.String("subject", subject))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
