package notification

import (
	"context"
	"log/slog"

	"guardianmed/internal/domain/service"
)

// logNotifier writes messages to the log instead of delivering them.
// Development only: the body carries the code in clear text.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a Notifier that logs each message.
func NewLogNotifier(logger *slog.Logger) service.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Send(_ context.Context, address, subject, body string) error {
	n.logger.Info("[LogMail] Message not delivered, printing instead",
		slog.String("to", address),
		slog.String("subject", subject),
		slog.String("body", body),
	)

	return nil
}
