package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"guardianmed/internal/domain/lifecycle"
	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
	gocloudpubsub "gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// goCloudPublisher implements AuditPublisher over a Go CDK portable topic.
// The driver is chosen by the URL scheme; mem:// is linked in.
type goCloudPublisher struct {
	topic  *gocloudpubsub.Topic
	logger *slog.Logger
}

// NewGoCloudPublisher opens the topic at topicURL.
func NewGoCloudPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (service.AuditPublisher, error) {
	topic, err := gocloudpubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	return &goCloudPublisher{topic: topic, logger: logger}, nil
}

// Publish sends an audit event to the topic.
func (p *goCloudPublisher) Publish(ctx context.Context, event *service.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := p.topic.Send(ctx, &gocloudpubsub.Message{
		Body:     data,
		Metadata: auditAttributes(event),
	}); err != nil {
		return errors.Wrap(err, "failed to send audit event")
	}

	p.logger.Debug("[GoCloudPubSub] Audit event published", slog.String("action", event.Action))

	return nil
}

// Close flushes pending sends and releases the topic.
func (p *goCloudPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return errors.WithStack(p.topic.Shutdown(ctx))
}
