package notification

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"guardianmed/config"
	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

type smtpNotifier struct {
	host   string
	opts   []mail.Option
	from   string
	send   func(ctx context.Context, msg *mail.Msg) error
	logger *slog.Logger
}

// NewSMTPNotifier creates a Notifier that relays mail through an SMTP server.
func NewSMTPNotifier(cfg *config.MailConfig, logger *slog.Logger) (service.Notifier, error) {
	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(dialWithDeadline),
	}
	if cfg.SMTP.Port != 0 {
		opts = append(opts, mail.WithPort(cfg.SMTP.Port))
	}
	if cfg.SMTP.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTP.Username),
			mail.WithPassword(cfg.SMTP.Password),
		)
	}

	// Fail at startup on a bad host or port instead of on the first login.
	if _, err := mail.NewClient(cfg.SMTP.Host, opts...); err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	n := &smtpNotifier{
		host:   cfg.SMTP.Host,
		opts:   opts,
		from:   cfg.From,
		logger: logger,
	}
	n.send = n.dialAndSend

	return n, nil
}

// Send delivers one plain-text message. The dial and the whole SMTP exchange
// end at the context deadline.
func (n *smtpNotifier) Send(ctx context.Context, address, subject, body string) error {
	if strings.ContainsAny(address, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("header values must not contain line breaks")
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(address); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.send(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}
	n.logger.Debug("[SMTP] Mail sent", slog.String("relay", n.host))

	return nil
}

// dialAndSend uses a fresh client per message; a mail.Client holds a single connection.
func (n *smtpNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(n.host, n.opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// dialWithDeadline carries the context deadline onto the connection, so a
// relay that stops answering cannot hold it past the caller's timeout.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()

			return nil, err
		}
	}

	return conn, nil
}
