package service

import (
	"context"
	"sync"
	"time"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/models"
)

const publishTimeout = 10 * time.Second

// EventDispatcher publishes directory writes on detached goroutines. The
// gateway confirms nothing, so there is no result to wait for: callers fire
// and forget, and a lost write degrades the directory tier only — the local
// cache has already been updated by the time an event is dispatched.
type EventDispatcher struct {
	gateway adapter.GatewayClient
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewEventDispatcher(gateway adapter.GatewayClient, l *logger.Logger) *EventDispatcher {
	return &EventDispatcher{gateway: gateway, logger: l}
}

// Publish sends the event on its own goroutine with an independent timeout
// context, so a caller's cancelled context (e.g. a closed TUI page) cannot
// abort an in-flight directory write. Failures are logged and swallowed.
func (d *EventDispatcher) Publish(event models.GatewayEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := d.gateway.PublishEvent(ctx, event); err != nil {
			d.logger.Warn().Err(err).
				Str("kind", string(event.Kind)).
				Str("email", event.Email).
				Msg("directory event publish failed")
			return
		}

		d.logger.Debug().
			Str("kind", string(event.Kind)).
			Str("email", event.Email).
			Msg("directory event published")
	}()
}

// Wait blocks until every in-flight publish has finished. Used on shutdown
// and in tests.
func (d *EventDispatcher) Wait() {
	d.wg.Wait()
}
