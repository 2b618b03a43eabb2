package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

func day(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func running(id uint, startHour, startMin, durationMin int, startedAt time.Time) models.Appointment {
	started := startedAt
	return models.Appointment{
		ID:          id,
		ScheduledAt: day(startHour, startMin),
		DurationMin: durationMin,
		Status:      string(StatusConfirmed),
		StartedAt:   &started,
	}
}

func waiting(id uint, startHour, startMin, durationMin int) models.Appointment {
	return models.Appointment{
		ID:          id,
		ScheduledAt: day(startHour, startMin),
		DurationMin: durationMin,
		Status:      string(StatusPending),
	}
}

func TestComputeDelaysOverrunPropagates(t *testing.T) {
	// 09:00 slot of 30min started on time and is 20min over at "now".
	aps := []models.Appointment{
		running(1, 9, 0, 30, day(9, 0)),
		waiting(2, 9, 30, 30),
		waiting(3, 10, 0, 30),
	}
	now := day(9, 50)

	delays := ComputeDelays(aps, now)

	assert.Equal(t, 20, delays[2])
	assert.Equal(t, 20, delays[3])
	_, hasSelf := delays[1]
	assert.False(t, hasSelf, "running appointment gets no entry")
}

func TestComputeDelaysOnTimeYieldsNothing(t *testing.T) {
	aps := []models.Appointment{
		running(1, 9, 0, 30, day(9, 0)),
		waiting(2, 9, 30, 30),
	}
	now := day(9, 10) // elapsed < predicted

	delays := ComputeDelays(aps, now)
	assert.Empty(t, delays)
}

func TestComputeDelaysIsMaxNotSum(t *testing.T) {
	// Two overruns in sequence: the queue is only as late as the larger
	// current overflow, overruns never stack.
	aps := []models.Appointment{
		running(1, 9, 0, 30, day(9, 0)),
		running(2, 9, 30, 30, day(9, 45)),
		waiting(3, 10, 0, 30),
	}
	now := day(10, 25)

	delays := ComputeDelays(aps, now)
	// first: elapsed 85 - 30 = 55; second: elapsed 40 - 30 = 10; max = 55
	assert.Equal(t, 55, delays[3])
}

func TestComputeDelaysSkipsFinalized(t *testing.T) {
	started := day(9, 0)
	aps := []models.Appointment{
		{
			ID: 1, ScheduledAt: day(9, 0), DurationMin: 30,
			Status: string(StatusCompleted), StartedAt: &started,
		},
		{ID: 2, ScheduledAt: day(9, 30), DurationMin: 30, Status: string(StatusCancelled)},
		waiting(3, 10, 0, 30),
	}
	now := day(11, 0)

	delays := ComputeDelays(aps, now)
	assert.Empty(t, delays, "closed appointments carry no overflow forward")
}

func TestComputeDelaysConfirmedNotStartedInheritsLikePending(t *testing.T) {
	aps := []models.Appointment{
		running(1, 9, 0, 30, day(9, 0)),
		{ID: 2, ScheduledAt: day(9, 30), DurationMin: 30, Status: string(StatusConfirmed)},
	}
	now := day(9, 45)

	delays := ComputeDelays(aps, now)
	assert.Equal(t, 15, delays[2])
}

func TestComputeDelaysRoundsElapsed(t *testing.T) {
	started := day(9, 0)
	aps := []models.Appointment{
		{
			ID: 1, ScheduledAt: day(9, 0), DurationMin: 30,
			Status: string(StatusConfirmed), StartedAt: &started,
		},
		waiting(2, 9, 30, 30),
	}
	// 40min31s elapsed rounds to 41 -> overflow 11
	now := day(9, 40).Add(31 * time.Second)

	delays := ComputeDelays(aps, now)
	assert.Equal(t, 11, delays[2])
}
