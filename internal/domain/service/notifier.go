package service

import "context"

// Notifier delivers a short text message to an out-of-band address.
type Notifier interface {
	Send(ctx context.Context, address, subject, body string) error
}
