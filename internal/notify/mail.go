package notify

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cityinfo-api/internal/config"
)

// LocalMailService is a development Notifier that writes each mail to the
// log instead of handing it to a mail server.
type LocalMailService struct {
	mailTo   string
	mailFrom string
	logger   *slog.Logger
}

// NewLocalMailService creates a LocalMailService using the configured addresses.
// If logger is nil, a default logger will be used.
func NewLocalMailService(cfg config.MailConfig, logger *slog.Logger) *LocalMailService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalMailService{
		mailTo:   cfg.MailTo,
		mailFrom: cfg.MailFrom,
		logger:   logger.With(slog.String("component", "local_mail_service")),
	}
}

// Ensure LocalMailService implements Notifier interface
var _ Notifier = (*LocalMailService)(nil)

// Send implements Notifier.
func (s *LocalMailService) Send(ctx context.Context, subject, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "mail sent",
		slog.String("from", s.mailFrom),
		slog.String("to", s.mailTo),
		slog.Any("mail", NewMessage(subject, message)))
	return nil
}
