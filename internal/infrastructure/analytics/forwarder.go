package analytics

import (
	"context"

	"github.com/stratix/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Forwarder subscribes to the event bus and pushes every domain event to
// the analytics sink. Delivery failures propagate back to the outbox
// processor, which retries with backoff.
type Forwarder struct {
	client *SinkClient
	logger *zap.Logger
}

// NewForwarder creates a new analytics forwarder
func NewForwarder(client *SinkClient, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forwarder{
		client: client,
		logger: logger,
	}
}

// Handle delivers the event to the sink
func (f *Forwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	return f.client.Deliver(ctx, event)
}

// EventTypes returns an empty slice so the forwarder receives all events
func (f *Forwarder) EventTypes() []string {
	return nil
}

// Ensure Forwarder implements EventHandler
var _ shared.EventHandler = (*Forwarder)(nil)
