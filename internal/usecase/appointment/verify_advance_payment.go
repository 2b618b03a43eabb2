package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda-sync/internal/audit"
	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
	"github.com/BruksfildServices01/agenda-sync/internal/payments"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
)

type VerifyAdvancePayment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	changes  realtime.Publisher
	verifier payments.Verifier
}

func NewVerifyAdvancePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	changes realtime.Publisher,
	verifier payments.Verifier,
) *VerifyAdvancePayment {
	return &VerifyAdvancePayment{
		repo:     repo,
		audit:    audit,
		changes:  changes,
		verifier: verifier,
	}
}

// Execute records the staff decision on an advance payment. When a gateway
// payment reference accompanies a "verified" outcome, the reference is
// cross-checked against the gateway for the snapshotted final amount; the
// usual path is manual (staff eyeballs the proof screenshot).
func (uc *VerifyAdvancePayment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	outcome domain.AdvancePaymentStatus,
	paymentRef string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if outcome == domain.AdvanceVerified && paymentRef != "" && uc.verifier != nil {
		expected := 0
		if ap.AdvanceFinalCents != nil {
			expected = *ap.AdvanceFinalCents
		}
		ok, err := uc.verifier.VerifyPayment(ctx, paymentRef, expected)
		if err != nil {
			return nil, httperr.ErrTransient("payment_gateway_unavailable")
		}
		if !ok {
			return nil, httperr.ErrBusiness("payment_not_approved")
		}
	}

	if err := domain.VerifyAdvancePayment(ap, outcome); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.Normalize(err)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "advance_payment_" + string(outcome),
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	_ = uc.changes.Publish(ctx, realtime.TopicBarber(barbershopID, barberID))

	return ap, nil
}
