package realtime

import (
	"context"
	"time"
)

// PollSource is the degraded transport: it fires unconditionally on a fixed
// interval, which drives the exact same refetch path a push signal would.
// Bandwidth traded for correctness simplicity.
type PollSource struct {
	interval time.Duration
}

func NewPollSource(intervalSecs int) *PollSource {
	if intervalSecs <= 0 {
		intervalSecs = 30
	}
	return &PollSource{interval: time.Duration(intervalSecs) * time.Second}
}

func (s *PollSource) Subscribe(ctx context.Context, topic string) (<-chan Change, func(), error) {
	out := make(chan Change, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- Change{}:
				default:
				}
			}
		}
	}()

	stop := stopOnce(func() { close(done) })

	return out, stop, nil
}
