package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollSourceFiresOnInterval(t *testing.T) {
	src := &PollSource{interval: 10 * time.Millisecond}

	changes, stop, err := src.Subscribe(context.Background(), "agenda:shop:1")
	require.NoError(t, err)
	defer stop()

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a poll tick")
	}
}

func TestPollSourceStopClosesChannel(t *testing.T) {
	src := &PollSource{interval: 5 * time.Millisecond}

	changes, stop, err := src.Subscribe(context.Background(), "agenda:shop:1")
	require.NoError(t, err)

	stop()
	stop() // idempotent

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel never closed after stop")
		}
	}
}

func TestPollSourceHonorsContext(t *testing.T) {
	src := &PollSource{interval: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	changes, stop, err := src.Subscribe(ctx, "agenda:barber:1:2")
	require.NoError(t, err)
	defer stop()

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel never closed after ctx cancel")
		}
	}
}

func TestStopOnceRunsExactlyOnce(t *testing.T) {
	done := make(chan struct{})
	stop := stopOnce(func() { close(done) })

	stop()
	stop() // a second call must not close an already-closed channel

	select {
	case <-done:
	default:
		t.Fatal("stop never ran")
	}
}

func TestNewPollSourceDefaultsInterval(t *testing.T) {
	src := NewPollSource(0)
	assert.Equal(t, 30*time.Second, src.interval)

	src = NewPollSource(7)
	assert.Equal(t, 7*time.Second, src.interval)
}
