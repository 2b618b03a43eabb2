package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/dto"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

type ListDaySchedule struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListDaySchedule(repo domain.Repository) *ListDaySchedule {
	return &ListDaySchedule{repo: repo, now: time.Now}
}

// Execute returns one barber's day: appointments ordered by start, the
// aggregate status counts, and the delay each downstream appointment
// inherits from whatever is currently running over. Delays are recomputed
// here on every call and never written back.
func (uc *ListDaySchedule) Execute(
	ctx context.Context,
	barberID uint,
	barbershopID uint,
	date time.Time,
) (*dto.DayScheduleDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	start := timezone.StartOfDay(date, shop.Timezone)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, httperr.ErrTransient("schedule_fetch_failed")
	}

	delays := domain.ComputeDelays(appointments, uc.now())

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	counts := dto.ScheduleCounts{}

	for i := range appointments {
		ap := &appointments[i]
		tally(&counts, domain.Status(ap.Status))

		out = append(out, dto.AppointmentListDTO{
			ID:                   ap.ID,
			ScheduledAt:          ap.ScheduledAt,
			EndTime:              ap.End(),
			DurationMin:          ap.DurationMin,
			Status:               ap.Status,
			Source:               ap.Source,
			ClientName:           clientName(ap),
			ServiceName:          ap.Service.Name,
			PriceCents:           ap.PriceCents,
			StartedAt:            ap.StartedAt,
			ActualDurationMin:    ap.ActualDurationMin,
			AdvancePaymentStatus: ap.AdvancePaymentStatus,
			DelayMin:             delays[ap.ID],
		})
	}

	return &dto.DayScheduleDTO{
		Date:         timezone.DateKey(start, shop.Timezone),
		Appointments: out,
		Counts:       counts,
	}, nil
}

func tally(c *dto.ScheduleCounts, st domain.Status) {
	c.Total++
	switch st {
	case domain.StatusPending:
		c.Pending++
	case domain.StatusConfirmed:
		c.Confirmed++
	case domain.StatusCompleted:
		c.Completed++
	case domain.StatusCancelled:
		c.Cancelled++
	case domain.StatusNoShow:
		c.NoShow++
	}
}

func clientName(ap *models.Appointment) string {
	if ap.Client != nil {
		return ap.Client.Name
	}
	return ""
}
