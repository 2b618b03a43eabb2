package appointment

import (
	"context"
	"math"
	"time"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/metrics"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

const predictionSample = 10

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute enumerates bookable start times for one barber and date.
//
// The grid runs at the shop's slot granularity across the barber's working
// hours; a candidate survives when [start, start+duration+buffer) clears the
// lunch break and every non-cancelled appointment of the day. A closed day
// yields an empty grid, not an error; a store failure yields a transient
// error the caller must render differently from "no slots".
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	// The date is interpreted in the shop's timezone regardless of the
	// caller's zone; so is the "today" decision below.
	loc := timezone.Location(shop.Timezone)
	day := in.Date.In(loc)
	weekday := int(day.Weekday())

	granularity := shop.SlotGranularityMin
	if granularity <= 0 {
		granularity = 15
	}

	empty := &domain.Availability{
		Slots:          []domain.TimeSlot{},
		GranularityMin: granularity,
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil {
		return nil, httperr.ErrTransient("availability_fetch_failed")
	}
	if wh == nil || !wh.Active {
		return empty, nil
	}

	dayStart := domain.HourOnDate(wh.StartTime, day)
	dayEnd := domain.HourOnDate(wh.EndTime, day)
	if !dayStart.Before(dayEnd) {
		return empty, nil
	}

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = domain.HourOnDate(wh.LunchStart, day)
		lunchEnd = domain.HourOnDate(wh.LunchEnd, day)
	}

	duration, predicted, err := uc.effectiveDuration(ctx, shop, service, in.BarberID)
	if err != nil {
		return nil, httperr.ErrTransient("availability_fetch_failed")
	}

	existing, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, httperr.ErrTransient("availability_fetch_failed")
	}

	promos, err := uc.repo.ActivePromotions(ctx, in.BarbershopID, weekday)
	if err != nil {
		return nil, httperr.ErrTransient("availability_fetch_failed")
	}

	need := time.Duration(duration+service.BufferMin) * time.Minute
	step := time.Duration(granularity) * time.Minute

	// Same-day requests only offer slots the shop still accepts.
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	var minStart time.Time
	isToday := timezone.SameDay(day, uc.now(), shop.Timezone)
	if isToday {
		minStart = uc.now().In(loc).Add(time.Duration(minAdvance) * time.Minute)
	}

	slots := []domain.TimeSlot{}

	for cur := dayStart; !cur.Add(need).After(dayEnd); cur = cur.Add(step) {

		slotStart := cur
		slotEnd := cur.Add(need)

		if isToday && slotStart.Before(minStart) {
			continue
		}

		if hasLunch && domain.Overlaps(slotStart, slotEnd, lunchStart, lunchEnd) {
			continue
		}

		if hasConflict(existing, slotStart, slotEnd) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start:    slotStart.Format("15:04"),
			End:      slotStart.Add(time.Duration(duration) * time.Minute).Format("15:04"),
			Discount: matchPromotion(promos, service, slotStart),
		})
	}

	metrics.SlotComputations.Inc()

	return &domain.Availability{
		Slots:          slots,
		GranularityMin: granularity,
		Predicted:      predicted,
		// Predicted durations drift as the day's actual timings land,
		// so a same-day grid must be re-polled by the caller.
		AutoRefresh: predicted && isToday,
	}, nil
}

// effectiveDuration picks the predicted duration (rolling mean of recent
// actual durations) when the shop enables prediction, nominal otherwise.
func (uc *GetAvailability) effectiveDuration(
	ctx context.Context,
	shop *models.Barbershop,
	service *models.Service,
	barberID uint,
) (int, bool, error) {

	if !shop.DurationPredictionEnabled {
		return service.DurationMin, false, nil
	}

	avg, err := uc.repo.AverageActualDuration(ctx, barberID, service.ID, predictionSample)
	if err != nil {
		return 0, false, err
	}
	if avg == nil {
		// no history yet; nominal, but still a prediction-backed grid
		return service.DurationMin, true, nil
	}

	return int(math.Round(*avg)), true, nil
}

func hasConflict(existing []models.Appointment, start, end time.Time) bool {
	for i := range existing {
		ap := &existing[i]
		if domain.Status(ap.Status) == domain.StatusCancelled {
			continue
		}
		if domain.Overlaps(start, end, ap.ScheduledAt, ap.End()) {
			return true
		}
	}
	return false
}

func matchPromotion(
	promos []models.Promotion,
	service *models.Service,
	slotStart time.Time,
) *domain.SlotDiscount {

	for i := range promos {
		p := &promos[i]
		if p.ServiceID != nil && *p.ServiceID != service.ID {
			continue
		}

		winStart := domain.HourOnDate(p.StartTime, slotStart)
		winEnd := domain.HourOnDate(p.EndTime, slotStart)
		if slotStart.Before(winStart) || !slotStart.Before(winEnd) {
			continue
		}

		final := service.PriceCents * (100 - p.DiscountPct) / 100
		return &domain.SlotDiscount{
			PromotionID:     p.ID,
			DiscountPct:     p.DiscountPct,
			FinalPriceCents: final,
			ProofChannel:    p.ProofChannel,
		}
	}

	return nil
}
