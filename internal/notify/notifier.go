package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Notifier is the fire-and-forget feed-refresh signal emitted after a
// successful quote create or delete. The core never waits on delivery.
type Notifier interface {
	FeedChanged(ctx context.Context)
}

// Subscriber receives feed-change signals, e.g. a cache invalidator.
type Subscriber func(ctx context.Context)

// FanOut delivers feed-change signals to registered subscribers
// asynchronously. A slow or failing subscriber never blocks the caller.
type FanOut struct {
	logger      *slog.Logger
	subscribers []Subscriber
	mu          sync.RWMutex
}

// NewFanOut creates an empty fan-out notifier
func NewFanOut(logger *slog.Logger) *FanOut {
	if logger == nil {
		logger = slog.Default()
	}
	return &FanOut{logger: logger}
}

// Subscribe registers a subscriber for future feed-change signals
func (f *FanOut) Subscribe(s Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, s)
}

// FeedChanged dispatches the signal to every subscriber on its own goroutine.
// Panicking subscribers are contained and logged.
func (f *FanOut) FeedChanged(ctx context.Context) {
	f.mu.RLock()
	subscribers := make([]Subscriber, len(f.subscribers))
	copy(subscribers, f.subscribers)
	f.mu.RUnlock()

	for _, s := range subscribers {
		go func(s Subscriber) {
			defer func() {
				if r := recover(); r != nil {
					f.logger.Error("feed-change subscriber panicked", "panic", r)
				}
			}()
			s(context.WithoutCancel(ctx))
		}(s)
	}
}

// Noop is a Notifier that drops every signal. Used in tests and when no
// dependent view needs invalidation.
type Noop struct{}

func (Noop) FeedChanged(context.Context) {}
