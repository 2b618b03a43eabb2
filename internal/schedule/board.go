package schedule

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/metrics"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/optimistic"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-sync/internal/usecase/appointment"
)

// Rescheduler is the server round-trip behind an optimistic move.
type Rescheduler interface {
	Execute(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		appointmentID uint,
		dateStr string,
		timeStr string,
	) (*models.Appointment, error)
}

var _ Rescheduler = (*ucAppointment.RescheduleAppointment)(nil)

// Board holds one barber-day as an immutable snapshot, replaced wholesale
// on every refetch or invalidation so readers and the delay computation
// never observe a torn view. Latency-sensitive moves go through an
// optimistic transaction: the board shows the guess instantly and reverts
// to the snapshot when the server says no.
type Board struct {
	barbershopID uint
	barberID     uint
	tz           string

	repo        domain.Repository
	rescheduler Rescheduler
	logger      *logging.Logger
	now         func() time.Time

	mu  sync.RWMutex
	day time.Time
	aps []models.Appointment
}

func NewBoard(
	barbershopID uint,
	barberID uint,
	tz string,
	repo domain.Repository,
	rescheduler Rescheduler,
	logger *logging.Logger,
) *Board {
	if logger == nil {
		logger = logging.Default()
	}
	return &Board{
		barbershopID: barbershopID,
		barberID:     barberID,
		tz:           tz,
		repo:         repo,
		rescheduler:  rescheduler,
		logger:       logger,
		now:          time.Now,
	}
}

// Timezone returns the shop timezone the board resolves days in.
func (b *Board) Timezone() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tz
}

// SetTimezone repins the board after a shop timezone update; subsequent
// refetches and parses resolve in the new location.
func (b *Board) SetTimezone(tz string) {
	b.mu.Lock()
	b.tz = tz
	b.mu.Unlock()
}

// Refresh refetches the whole day and swaps the snapshot in.
func (b *Board) Refresh(ctx context.Context, date time.Time) error {
	start := timezone.StartOfDay(date, b.Timezone())
	end := start.Add(24 * time.Hour)

	aps, err := b.repo.ListAppointmentsForPeriod(ctx, b.barberID, start, end)
	if err != nil {
		return httperr.ErrTransient("schedule_fetch_failed")
	}

	b.mu.Lock()
	b.day = start
	b.aps = aps
	b.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current day's appointments.
func (b *Board) Snapshot() []models.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Appointment, len(b.aps))
	copy(out, b.aps)
	return out
}

// Delays recomputes the cascade against the current snapshot.
func (b *Board) Delays() map[uint]int {
	return domain.ComputeDelays(b.Snapshot(), b.now())
}

// Reschedule moves an appointment optimistically: the board reflects the
// new start before the server answers. A rejection restores the exact
// pre-move snapshot and surfaces the error; the caller owns the toast.
func (b *Board) Reschedule(
	ctx context.Context,
	appointmentID uint,
	dateStr string,
	timeStr string,
) (*models.Appointment, error) {

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(b.Timezone()),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	tx := optimistic.Begin(b.Snapshot())

	tx.Apply(func(aps []models.Appointment) []models.Appointment {
		for i := range aps {
			if aps[i].ID == appointmentID {
				aps[i].ScheduledAt = newStart
			}
		}
		return aps
	})
	b.swap(tx.Working())

	updated, err := b.rescheduler.Execute(
		ctx,
		b.barbershopID,
		b.barberID,
		appointmentID,
		dateStr,
		timeStr,
	)
	if err != nil {
		b.swap(tx.Rollback())
		metrics.OptimisticRollbacks.Inc()
		b.logger.Info("optimistic reschedule reverted",
			"appointment_id", appointmentID,
			"err", err,
		)
		return nil, httperr.Normalize(err)
	}

	committed, err := tx.Commit(func(aps []models.Appointment) []models.Appointment {
		// Replace the guess with the server's normalized row.
		for i := range aps {
			if aps[i].ID == updated.ID {
				aps[i] = *updated
			}
		}
		return aps
	})
	if err != nil {
		return nil, err
	}

	b.swap(committed)
	return updated, nil
}

// Watch subscribes the board to its barber topic and refetches on every
// invalidation until ctx ends. Identical behavior under push and poll.
func (b *Board) Watch(ctx context.Context, source realtime.ChangeSource) error {
	changes, stop, err := source.Subscribe(ctx, realtime.TopicBarber(b.barbershopID, b.barberID))
	if err != nil {
		return err
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			b.mu.RLock()
			day := b.day
			b.mu.RUnlock()
			if day.IsZero() {
				day = b.now()
			}
			if err := b.Refresh(ctx, day); err != nil {
				b.logger.Warn("board refresh failed", "barber_id", b.barberID, "err", err)
			}
		}
	}
}

func (b *Board) swap(aps []models.Appointment) {
	b.mu.Lock()
	b.aps = aps
	b.mu.Unlock()
}
