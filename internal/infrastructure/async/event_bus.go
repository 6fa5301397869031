package async

import (
	"context"

	"go.uber.org/zap"

	"prnotify/internal/domain"
)

// AsyncEventBus turns operational events into structured log lines off the
// dispatch path. notification.dropped is logged at warn so missed
// notifications stand out; the system has no other signal for them.
type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Publish(ctx context.Context, e domain.Event) {
	b.pool.Submit(func(_ context.Context) {
		if e.Type == "notification.dropped" {
			b.log.Warn("operational_event",
				zap.String("type", e.Type),
				zap.Any("payload", e.Payload),
			)
			return
		}
		b.log.Info("operational_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
	})
}

func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
