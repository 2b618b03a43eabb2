package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/audit"
	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

type RescheduleAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	changes realtime.Publisher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	changes realtime.Publisher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		audit:   audit,
		changes: changes,
	}
}

// Execute moves a non-finalized appointment to a new start. The new window
// must clear working hours and every other appointment of the barber; a
// losing race surfaces as a conflict so the caller can roll its optimistic
// view back.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	dateStr string,
	timeStr string,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	newStart, err := time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	newEnd := newStart.Add(time.Duration(ap.DurationMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, barberID, newStart, newEnd)
	if err != nil {
		return nil, httperr.Normalize(err)
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	if err := uc.repo.AssertNoTimeConflictExcluding(ctx, barberID, newStart, newEnd, ap.ID); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			return nil, httperr.ErrConflict("time_conflict")
		}
		return nil, httperr.Normalize(err)
	}

	if err := domain.Reschedule(ap, newStart); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Normalize(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"new_start": newStart,
		},
	})

	_ = uc.changes.Publish(ctx, realtime.TopicBarber(barbershopID, barberID))
	_ = uc.changes.Publish(ctx, realtime.TopicShop(barbershopID))

	return ap, nil
}
