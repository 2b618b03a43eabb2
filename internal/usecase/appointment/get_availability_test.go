package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// Tuesday 2026-03-10 in UTC; the test shop runs on UTC so wall clocks in
// assertions read literally.
var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func availabilityFixture() *fakeRepo {
	return &fakeRepo{
		shop: &models.Barbershop{
			ID:                 1,
			Slug:               "corner-cuts",
			Timezone:           "UTC",
			MinAdvanceMinutes:  120,
			SlotGranularityMin: 30,
			PaymentMethods:     "cash",
		},
		services: map[uint]*models.Service{
			10: {ID: 10, BarbershopID: 1, Name: "Corte", DurationMin: 30, PriceCents: 5000},
		},
		hours: map[int]*models.WorkingHours{
			int(testDay.Weekday()): {
				BarberID:  2,
				Weekday:   int(testDay.Weekday()),
				Active:    true,
				StartTime: "09:00",
				EndTime:   "12:00",
			},
		},
	}
}

func availabilityUC(repo *fakeRepo, now time.Time) *GetAvailability {
	uc := NewGetAvailability(repo)
	uc.now = func() time.Time { return now }
	return uc
}

func slotStarts(av *domain.Availability) []string {
	out := make([]string, 0, len(av.Slots))
	for _, s := range av.Slots {
		out = append(out, s.Start)
	}
	return out
}

// far in the past relative to testDay, so min-advance never trims the grid
var notToday = testDay.AddDate(0, 0, -7)

func TestAvailabilityGridFollowsGranularity(t *testing.T) {
	repo := availabilityFixture()
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, av.GranularityMin)
	assert.False(t, av.Predicted)
	assert.False(t, av.AutoRefresh)
	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		slotStarts(av),
	)
}

func TestAvailabilityClosedDayIsEmptyNotError(t *testing.T) {
	repo := availabilityFixture()
	repo.hours = map[int]*models.WorkingHours{}
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)
	assert.Empty(t, av.Slots)
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	repo := availabilityFixture()
	repo.aps = []models.Appointment{
		{
			ID:          50,
			ScheduledAt: testDay.Add(10 * time.Hour), // 10:00–10:30
			DurationMin: 30,
			Status:      string(domain.StatusPending),
		},
		{
			ID:          51,
			ScheduledAt: testDay.Add(11 * time.Hour), // cancelled frees the slot
			DurationMin: 30,
			Status:      string(domain.StatusCancelled),
		},
	}
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	starts := slotStarts(av)
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "11:00")
}

func TestAvailabilitySkipsLunch(t *testing.T) {
	repo := availabilityFixture()
	wh := repo.hours[int(testDay.Weekday())]
	wh.EndTime = "14:00"
	wh.LunchStart = "12:00"
	wh.LunchEnd = "13:00"
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	starts := slotStarts(av)
	assert.NotContains(t, starts, "12:00")
	assert.NotContains(t, starts, "12:30")
	assert.Contains(t, starts, "11:30")
	assert.Contains(t, starts, "13:00")
}

func TestAvailabilityBufferExtendsOccupancyNotDisplay(t *testing.T) {
	repo := availabilityFixture()
	repo.services[10].BufferMin = 15
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	// need = 45min: the 11:30 candidate would run past closing
	starts := slotStarts(av)
	assert.NotContains(t, starts, "11:30")
	// displayed end stays at the service duration, buffer hidden
	assert.Equal(t, "09:30", av.Slots[0].End)
}

func TestAvailabilityMinAdvanceAppliesOnlyToday(t *testing.T) {
	repo := availabilityFixture()

	// 08:30 on the requested day: 120min advance kills everything before
	// 10:30
	uc := availabilityUC(repo, testDay.Add(8*time.Hour+30*time.Minute))

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, slotStarts(av))
}

func TestAvailabilityTodayUsesShopTimezone(t *testing.T) {
	repo := availabilityFixture()
	repo.shop.Timezone = "America/Sao_Paulo"
	repo.shop.DurationPredictionEnabled = true

	// 01:00 UTC on March 11 is still 22:00 March 10 in São Paulo, so a
	// request for March 10 counts as "today" and the grid auto-refreshes.
	now := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	uc := availabilityUC(repo, now)

	loc, _ := time.LoadLocation("America/Sao_Paulo")
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: date,
	})
	require.NoError(t, err)
	assert.True(t, av.Predicted)
	assert.True(t, av.AutoRefresh)
}

func TestAvailabilityPredictionUsesRollingMean(t *testing.T) {
	repo := availabilityFixture()
	repo.shop.DurationPredictionEnabled = true
	avg := 52.4
	repo.avg = &avg
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	assert.True(t, av.Predicted)
	assert.False(t, av.AutoRefresh, "prediction without today keeps the grid static")
	// rounded predicted duration (52min) shifts the displayed end
	assert.Equal(t, "09:52", av.Slots[0].End)
}

func TestAvailabilityStoreFailureIsTransient(t *testing.T) {
	repo := availabilityFixture()
	repo.listErr = assert.AnError
	uc := availabilityUC(repo, notToday)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindTransientNetwork))
}

func TestAvailabilityWorkingHoursFailureIsTransientNotClosed(t *testing.T) {
	repo := availabilityFixture()
	repo.hoursErr = assert.AnError
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.Error(t, err, "a failing hours lookup must not read as a closed day")
	assert.Nil(t, av)
	assert.True(t, httperr.IsKind(err, httperr.KindTransientNetwork))
}

func TestAvailabilityDecoratesPromotionWindow(t *testing.T) {
	repo := availabilityFixture()
	repo.promos = []models.Promotion{
		{
			ID:           3,
			BarbershopID: 1,
			Weekday:      int(testDay.Weekday()),
			StartTime:    "09:00",
			EndTime:      "10:00",
			DiscountPct:  20,
			Active:       true,
			ProofChannel: "whatsapp",
		},
	}
	uc := availabilityUC(repo, notToday)

	av, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarbershopID: 1, BarberID: 2, ServiceID: 10, Date: testDay,
	})
	require.NoError(t, err)

	require.NotNil(t, av.Slots[0].Discount)
	assert.Equal(t, 20, av.Slots[0].Discount.DiscountPct)
	assert.Equal(t, 4000, av.Slots[0].Discount.FinalPriceCents)

	// 10:00 sits outside the window (end exclusive)
	for _, s := range av.Slots {
		if s.Start == "10:00" {
			assert.Nil(t, s.Discount)
		}
	}
}
