package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda-sync/internal/audit"
	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
	"github.com/BruksfildServices01/agenda-sync/internal/timezone"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	changes realtime.Publisher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	changes realtime.Publisher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   audit,
		changes: changes,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Normalize(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	_ = uc.changes.Publish(ctx, realtime.TopicBarber(barbershopID, barberID))
	_ = uc.changes.Publish(ctx, realtime.TopicShop(barbershopID))

	return ap, nil
}
