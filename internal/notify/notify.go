package notify

import (
	"context"

	"go.uber.org/zap"
)

// Messenger delivers rendered text to the destination channel
type Messenger interface {
	Send(ctx context.Context, text string) error
}

// EventLogger records human-readable events
type EventLogger interface {
	Log(format string, v ...any)
}

// Notifier renders messages and relays them. Delivery failures are
// logged and never returned to the caller.
type Notifier struct {
	messenger Messenger
	events    EventLogger
	logger    *zap.Logger
}

// NewNotifier creates a notifier. events may be nil.
func NewNotifier(messenger Messenger, events EventLogger, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		messenger: messenger,
		events:    events,
		logger:    logger,
	}
}

// Notify renders m and sends it
func (n *Notifier) Notify(ctx context.Context, m Message) {
	text := m.Render()

	if err := n.messenger.Send(ctx, text); err != nil {
		if ctx.Err() != nil {
			n.logger.Warn("Notification dropped on shutdown",
				zap.String("kind", string(m.Kind)),
				zap.Error(err))
			return
		}
		n.logger.Error("Failed to send notification",
			zap.String("kind", string(m.Kind)),
			zap.Error(err))
		if n.events != nil {
			n.events.Log("[ERROR] Failed to send notification: %v", err)
		}
		return
	}

	n.logger.Debug("Notification sent", zap.String("kind", string(m.Kind)))
}
