package realtime

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/agenda-sync/internal/logging"
)

// Change is an empty invalidation signal. There is deliberately no payload:
// every notification means "refetch", never "apply this patch", so push and
// poll consumers share one code path.
type Change struct{}

// ChangeSource is a push-or-poll subscription. Subscribe returns a channel
// that fires on every change to the topic plus a stop function releasing
// the subscription. Implementations must close the channel after stop, and
// stop must tolerate repeated calls.
type ChangeSource interface {
	Subscribe(ctx context.Context, topic string) (<-chan Change, func(), error)
}

// stopOnce guards a subscription release so repeated calls are no-ops; both
// transports return their stop through it.
func stopOnce(fn func()) func() {
	var once sync.Once
	return func() { once.Do(fn) }
}

// Publisher signals a change on a topic. Mutating usecases call it after a
// successful store write.
type Publisher interface {
	Publish(ctx context.Context, topic string) error
}

// ======================================================
// Selection
// ======================================================

// NewChangeSource picks push when a redis client is configured, interval
// polling otherwise. Callers depend on ChangeSource only and cannot tell
// which transport is underneath.
func NewChangeSource(rdb *redis.Client, pollIntervalSecs int, logger *logging.Logger) ChangeSource {
	if rdb != nil {
		return NewRedisSource(rdb, logger)
	}
	return NewPollSource(pollIntervalSecs)
}

// NewPublisher mirrors NewChangeSource: redis when available, no-op
// otherwise (poll consumers notice changes on their own schedule).
func NewPublisher(rdb *redis.Client) Publisher {
	if rdb != nil {
		return &redisPublisher{rdb: rdb}
	}
	return NopPublisher{}
}

// NopPublisher drops every signal. Used when polling carries the load and
// by tests that don't care about invalidation.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string) error {
	return nil
}
