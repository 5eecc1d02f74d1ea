// Package eventbus provides the in-process publish/subscribe contract used
// to fan out domain events to the surrounding application.
package eventbus

import (
	"context"

	"github.com/Wutche/payrail/pkg/domain/events"
)

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Publish(ctx context.Context, event events.Event) error
	Subscribe(eventType string, handler func(context.Context, events.Event))
}
