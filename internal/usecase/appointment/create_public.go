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

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreatePublicBookingInput struct {
	BarbershopSlug string
	BarberID       uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	// Optional promotion reference; when it matches an active window the
	// discount is snapshotted and an advance payment is opened.
	PromotionID uint
}

type CreatePublicBookingOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	ClaimToken  string              `json:"claim_token"`
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicBooking struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	changes realtime.Publisher
	claims  *ClaimSigner
}

func NewCreatePublicBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	changes realtime.Publisher,
	claims *ClaimSigner,
) *CreatePublicBooking {
	return &CreatePublicBooking{
		repo:    repo,
		audit:   audit,
		changes: changes,
		claims:  claims,
	}
}

func (uc *CreatePublicBooking) Execute(
	ctx context.Context,
	in CreatePublicBookingInput,
) (*CreatePublicBookingOutput, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, in.BarbershopSlug)
	if err != nil {
		return nil, httperr.ErrNotFound("barbershop_not_found")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin+service.BufferMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, httperr.Normalize(err)
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		shop.ID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, httperr.Normalize(err)
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.BarberID, start, end); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			return nil, httperr.ErrConflict("time_conflict")
		}
		return nil, httperr.Normalize(err)
	}

	ap := &models.Appointment{
		BarbershopID: shop.ID,
		BarberID:     in.BarberID,
		ClientID:     &client.ID,
		ServiceID:    service.ID,
		ScheduledAt:  start,
		DurationMin:  service.DurationMin,
		PriceCents:   service.PriceCents,
		Status:       string(domain.InitialStatus()),
		Source:       string(domain.SourceOnline),
		Notes:        in.Notes,
	}

	if in.PromotionID != 0 {
		uc.applyPromotion(ctx, ap, shop, service, start, in.PromotionID)
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.Normalize(err)
	}

	claim, err := uc.claims.Sign(ap.ID)
	if err != nil {
		return nil, httperr.Normalize(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	_ = uc.changes.Publish(ctx, realtime.TopicBarber(shop.ID, in.BarberID))
	_ = uc.changes.Publish(ctx, realtime.TopicShop(shop.ID))

	return &CreatePublicBookingOutput{
		Appointment: ap,
		ClaimToken:  claim,
	}, nil
}

// applyPromotion freezes the discount math onto the appointment and opens
// the advance-payment sub-state. A reference that doesn't match an active
// window is silently ignored: the booking still stands at full price.
func (uc *CreatePublicBooking) applyPromotion(
	ctx context.Context,
	ap *models.Appointment,
	shop *models.Barbershop,
	service *models.Service,
	start time.Time,
	promotionID uint,
) {
	promos, err := uc.repo.ActivePromotions(ctx, shop.ID, int(start.Weekday()))
	if err != nil {
		return
	}

	for i := range promos {
		p := &promos[i]
		if p.ID != promotionID {
			continue
		}
		if p.ServiceID != nil && *p.ServiceID != service.ID {
			continue
		}

		winStart := domain.HourOnDate(p.StartTime, start)
		winEnd := domain.HourOnDate(p.EndTime, start)
		if start.Before(winStart) || !start.Before(winEnd) {
			continue
		}

		base := service.PriceCents
		final := base * (100 - p.DiscountPct) / 100
		pending := string(domain.AdvancePending)

		ap.AdvancePaymentStatus = &pending
		ap.AdvanceBaseCents = &base
		ap.AdvanceDiscountPct = &p.DiscountPct
		ap.AdvanceFinalCents = &final
		ap.AdvanceProofChannel = &p.ProofChannel
		ap.PriceCents = final
		return
	}
}
