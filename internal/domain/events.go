package domain

import "context"

// Event is an operational event published by the dispatcher for
// observability: notification.posted, notification.dropped, thread.created.
type Event struct {
	Type    string
	Payload map[string]any
}

type EventBus interface {
	Publish(ctx context.Context, e Event)
}
