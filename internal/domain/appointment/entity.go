package appointment

import (
	"math"
	"time"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// ===============================
// Domain Actions
// ===============================
// Each action mutates the model in memory after its guard passes; the
// usecase persists the whole row in a single UPDATE so a transition either
// fully lands or fully fails.

// CheckIn moves pending → confirmed and stamps StartedAt exactly once.
func CheckIn(ap *models.Appointment, now time.Time) error {
	if err := CanCheckIn(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	started := now
	ap.StartedAt = &started
	return nil
}

// Complete finalizes the appointment. configured is the shop's accepted
// payment method list: with more than one configured the caller must pick,
// with exactly one it is applied implicitly. A walk-in still pending must
// go through check-in first.
func Complete(
	ap *models.Appointment,
	now time.Time,
	method PaymentMethod,
	configured []string,
) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	if Source(ap.Source) == SourceWalkIn && Status(ap.Status) == StatusPending {
		return httperr.ErrBusiness("walk_in_requires_check_in")
	}

	switch len(configured) {
	case 0:
		// misconfigured shop: complete without payment info
	case 1:
		method = PaymentMethod(configured[0])
	default:
		if method == "" {
			return httperr.ErrBusiness("payment_method_required")
		}
		if !method.Valid() || !contains(configured, string(method)) {
			return httperr.ErrBusiness("payment_method_not_accepted")
		}
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now

	if method != "" {
		m := string(method)
		ap.PaymentMethod = &m
	}

	// Actual duration only exists when the appointment was actually
	// started; a completion straight from pending leaves it null.
	if ap.StartedAt != nil && ap.ActualDurationMin == nil {
		elapsed := int(math.Round(now.Sub(*ap.StartedAt).Minutes()))
		if elapsed < 0 {
			elapsed = 0
		}
		ap.ActualDurationMin = &elapsed
	}

	return nil
}

// NoShow finalizes without duration or payment.
func NoShow(ap *models.Appointment, now time.Time) error {
	if err := CanNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Reschedule moves ScheduledAt without touching the status.
func Reschedule(ap *models.Appointment, newStart time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.ScheduledAt = newStart
	return nil
}

// VerifyAdvancePayment cycles the orthogonal sub-state pending → verified
// or pending → rejected. Purely informational: never blocks a main-state
// transition.
func VerifyAdvancePayment(ap *models.Appointment, outcome AdvancePaymentStatus) error {
	if ap.AdvancePaymentStatus == nil {
		return httperr.ErrBusiness("no_advance_payment")
	}
	if AdvancePaymentStatus(*ap.AdvancePaymentStatus) != AdvancePending {
		return httperr.ErrBusiness("advance_already_verified")
	}
	if outcome != AdvanceVerified && outcome != AdvanceRejected {
		return httperr.ErrBusiness("invalid_advance_outcome")
	}

	s := string(outcome)
	ap.AdvancePaymentStatus = &s
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
