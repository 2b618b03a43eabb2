package realtime

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/metrics"
)

// RedisSource is the push implementation of ChangeSource on redis pub/sub.
type RedisSource struct {
	rdb    *redis.Client
	logger *logging.Logger
}

func NewRedisSource(rdb *redis.Client, logger *logging.Logger) *RedisSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisSource{rdb: rdb, logger: logger}
}

func (s *RedisSource) Subscribe(ctx context.Context, topic string) (<-chan Change, func(), error) {
	pubsub := s.rdb.Subscribe(ctx, topic)

	// Fail now, not on first message: a broken transport should make the
	// caller fall back to polling immediately.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan Change, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// Coalesce: one pending signal is enough, the
				// consumer refetches everything anyway.
				select {
				case out <- Change{}:
				default:
				}
			}
		}
	}()

	stop := stopOnce(func() {
		close(done)
		if err := pubsub.Close(); err != nil {
			s.logger.Warn("pubsub close failed", "topic", topic, "err", err)
		}
	})

	return out, stop, nil
}

type redisPublisher struct {
	rdb *redis.Client
}

func (p *redisPublisher) Publish(ctx context.Context, topic string) error {
	metrics.Invalidations.Inc()
	return p.rdb.Publish(ctx, topic, "1").Err()
}
