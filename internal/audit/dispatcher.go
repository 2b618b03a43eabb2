package audit

import (
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher writes audit rows off the request path. The queue is bounded;
// a full queue drops the event rather than stalling the API.
type Dispatcher struct {
	logger *Logger
	slog   *logging.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, slog *logging.Logger) *Dispatcher {
	if slog == nil {
		slog = logging.Default()
	}
	d := &Dispatcher{
		logger: logger,
		slog:   slog,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.BarbershopID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.slog.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch is nil-safe: components that don't carry an audit trail (tests,
// one-off tools) may hold a nil dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}
