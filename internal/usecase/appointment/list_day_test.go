package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

func TestListDayScheduleCountsAndDelays(t *testing.T) {
	started := testDay.Add(9 * time.Hour)
	repo := availabilityFixture()
	repo.aps = []models.Appointment{
		{
			ID:          1,
			ScheduledAt: testDay.Add(9 * time.Hour),
			DurationMin: 30,
			Status:      string(domain.StatusConfirmed),
			StartedAt:   &started,
			Service:     models.Service{Name: "Corte"},
		},
		{
			ID:          2,
			ScheduledAt: testDay.Add(9*time.Hour + 30*time.Minute),
			DurationMin: 30,
			Status:      string(domain.StatusPending),
			Service:     models.Service{Name: "Corte"},
		},
		{
			ID:          3,
			ScheduledAt: testDay.Add(10 * time.Hour),
			DurationMin: 30,
			Status:      string(domain.StatusCancelled),
			Service:     models.Service{Name: "Barba"},
		},
	}

	uc := NewListDaySchedule(repo)
	// 09:50: the running 09:00 slot is 20 minutes over
	uc.now = func() time.Time { return testDay.Add(9*time.Hour + 50*time.Minute) }

	day, err := uc.Execute(context.Background(), 2, 1, testDay)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", day.Date)
	assert.Equal(t, 3, day.Counts.Total)
	assert.Equal(t, 1, day.Counts.Pending)
	assert.Equal(t, 1, day.Counts.Confirmed)
	assert.Equal(t, 1, day.Counts.Cancelled)

	require.Len(t, day.Appointments, 3)
	assert.Equal(t, 0, day.Appointments[0].DelayMin, "running row carries no delay entry")
	assert.Equal(t, 20, day.Appointments[1].DelayMin)
	assert.Equal(t, 0, day.Appointments[2].DelayMin, "finalized rows never inherit delay")
}

func TestListDayScheduleEmptyDay(t *testing.T) {
	repo := availabilityFixture()
	uc := NewListDaySchedule(repo)

	day, err := uc.Execute(context.Background(), 2, 1, testDay)
	require.NoError(t, err)

	assert.Equal(t, 0, day.Counts.Total)
	assert.Empty(t, day.Appointments)
}
