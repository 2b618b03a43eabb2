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

type CreateWalkInInput struct {
	BarbershopID uint
	BarberID     uint

	// Optional: an anonymous walk-in has no client record.
	ClientName  string
	ClientPhone string

	ServiceID uint
	Notes     string
}

// CreateWalkIn books a walk-in starting now. No min-advance rule and no
// claim token; the person is standing at the counter. The appointment must
// still pass check-in before it can be completed.
type CreateWalkIn struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	changes realtime.Publisher
}

func NewCreateWalkIn(
	repo domain.Repository,
	audit *audit.Dispatcher,
	changes realtime.Publisher,
) *CreateWalkIn {
	return &CreateWalkIn{
		repo:    repo,
		audit:   audit,
		changes: changes,
	}
}

func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	granularity := shop.SlotGranularityMin
	if granularity <= 0 {
		granularity = 15
	}
	start := now.Truncate(time.Duration(granularity) * time.Minute)
	end := start.Add(time.Duration(service.DurationMin+service.BufferMin) * time.Minute)

	var clientID *uint
	if in.ClientName != "" {
		client, err := uc.repo.GetOrCreateClient(
			ctx,
			in.BarbershopID,
			in.ClientName,
			in.ClientPhone,
			"",
		)
		if err != nil {
			return nil, httperr.Normalize(err)
		}
		clientID = &client.ID
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.BarberID, start, end); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			return nil, httperr.ErrConflict("time_conflict")
		}
		return nil, httperr.Normalize(err)
	}

	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     clientID,
		ServiceID:    service.ID,
		ScheduledAt:  start,
		DurationMin:  service.DurationMin,
		PriceCents:   service.PriceCents,
		Status:       string(domain.InitialStatus()),
		Source:       string(domain.SourceWalkIn),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.Normalize(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "walk_in_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	_ = uc.changes.Publish(ctx, realtime.TopicBarber(in.BarbershopID, in.BarberID))
	_ = uc.changes.Publish(ctx, realtime.TopicShop(in.BarbershopID))

	return ap, nil
}
