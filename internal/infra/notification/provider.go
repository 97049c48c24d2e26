// Package notification delivers one-time codes to account holders.
package notification

import (
	"log/slog"

	"guardianmed/config"
	"guardianmed/internal/domain/constants"
	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotifierParams holds dependencies for Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}

	switch cfg.Provider {
	case constants.MailProviderSMTP:
		logger.Info("Using SMTP notifier",
			slog.String("host", cfg.SMTP.Host),
			slog.Int("port", cfg.SMTP.Port),
		)

		return NewSMTPNotifier(cfg, logger)

	case constants.MailProviderLog, "":
		logger.Warn("Using log notifier, one-time codes will be written to the log")

		return NewLogNotifier(logger), nil

	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
