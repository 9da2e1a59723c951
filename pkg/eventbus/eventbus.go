package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Event is anything that happened in the system and may have side effects.
type Event interface {
	Name() string
}

// Listener handles one event. A returned error is logged and dropped; it
// never reaches the operation that published the event.
type Listener func(ctx context.Context, event Event) error

// Publisher is the slice of the bus the services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

const listenerTimeout = time.Minute

// Bus dispatches events to subscribed listeners on a bounded worker pool.
// The primary write has already committed by the time Publish is called, so
// listener failures must not propagate back.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	pool      *ants.Pool
	logger    *zap.Logger
}

func New(logger *zap.Logger, poolSize int) (*Bus, error) {
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Bus{
		listeners: make(map[string][]Listener),
		pool:      pool,
		logger:    logger,
	}, nil
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish hands the event to every subscriber asynchronously. A full pool
// blocks the submitting goroutine briefly instead of dropping the event.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := b.listeners[event.Name()]
	b.mu.RUnlock()

	for _, listener := range listeners {
		l := listener
		err := b.pool.Submit(func() {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("event listener failed",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		})
		if err != nil {
			b.logger.Error("failed to submit event to worker pool",
				zap.String("event", event.Name()),
				zap.Error(err),
			)
		}
	}
}

func (b *Bus) Close() {
	b.pool.Release()
}
