package service

import (
	"context"
	"time"
)

// AuditEvent records the outcome of an authentication step.
// Reason carries the internal cause and is never shown to clients.
type AuditEvent struct {
	RequestID  string    `json:"request_id,omitempty"`
	Action     string    `json:"action"`
	Outcome    string    `json:"outcome"`
	Reason     string    `json:"reason,omitempty"`
	Username   string    `json:"username"`
	AccountID  string    `json:"account_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditPublisher defines the interface for publishing audit events to a message queue
type AuditPublisher interface {
	// Publish sends one audit event
	Publish(ctx context.Context, event *AuditEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
