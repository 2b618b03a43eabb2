package schedule

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
)

type boardKey struct {
	barbershopID uint
	barberID     uint
}

// Manager owns one board per barber and keeps each subscribed to its topic
// for as long as the process lives. Boards are created lazily on first use.
type Manager struct {
	repo        domain.Repository
	rescheduler Rescheduler
	source      realtime.ChangeSource
	logger      *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	boards map[boardKey]*Board
}

func NewManager(
	repo domain.Repository,
	rescheduler Rescheduler,
	source realtime.ChangeSource,
	logger *logging.Logger,
) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		repo:        repo,
		rescheduler: rescheduler,
		source:      source,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		boards:      make(map[boardKey]*Board),
	}
}

// Board returns the barber's board, creating and watching it on first use.
func (m *Manager) Board(barbershopID, barberID uint, tz string) *Board {
	key := boardKey{barbershopID: barbershopID, barberID: barberID}

	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.boards[key]; ok {
		// The caller passes the shop's current timezone on every lookup;
		// a config change takes effect without a process restart.
		if b.Timezone() != tz {
			b.SetTimezone(tz)
		}
		return b
	}

	b := NewBoard(barbershopID, barberID, tz, m.repo, m.rescheduler, m.logger)
	m.boards[key] = b

	go func() {
		if err := b.Watch(m.ctx, m.source); err != nil && m.ctx.Err() == nil {
			m.logger.Warn("board watch ended",
				"barbershop_id", barbershopID,
				"barber_id", barberID,
				"err", err,
			)
		}
	}()

	return b
}

// Close tears down every watch goroutine.
func (m *Manager) Close() {
	m.cancel()
}
