package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

func pendingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:          1,
		ScheduledAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Status:      string(StatusPending),
		Source:      string(SourceOnline),
	}
}

func TestCheckInStampsStartedAtOnce(t *testing.T) {
	ap := pendingAppointment()
	now := time.Date(2026, 3, 10, 9, 2, 0, 0, time.UTC)

	require.NoError(t, CheckIn(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.StartedAt)
	assert.Equal(t, now, *ap.StartedAt)

	// second check-in is refused and StartedAt stays untouched
	err := CheckIn(ap, now.Add(5*time.Minute))
	assert.Error(t, err)
	assert.Equal(t, now, *ap.StartedAt)
}

func TestCompleteDerivesActualDurationFromCheckIn(t *testing.T) {
	ap := pendingAppointment()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, CheckIn(ap, start))

	end := start.Add(42*time.Minute + 20*time.Second)
	require.NoError(t, Complete(ap, end, "", []string{"cash"}))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.ActualDurationMin)
	assert.Equal(t, 42, *ap.ActualDurationMin)
	require.NotNil(t, ap.PaymentMethod)
	assert.Equal(t, "cash", *ap.PaymentMethod)
}

func TestCompleteWithoutCheckInLeavesDurationNull(t *testing.T) {
	ap := pendingAppointment()
	now := ap.ScheduledAt.Add(time.Hour)

	require.NoError(t, Complete(ap, now, "", []string{"cash"}))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Nil(t, ap.ActualDurationMin)
}

func TestCompleteWalkInRequiresCheckIn(t *testing.T) {
	ap := pendingAppointment()
	ap.Source = string(SourceWalkIn)

	err := Complete(ap, ap.ScheduledAt.Add(time.Hour), "", []string{"cash"})
	assert.True(t, httperr.IsBusiness(err, "walk_in_requires_check_in"))
	assert.Equal(t, string(StatusPending), ap.Status)

	require.NoError(t, CheckIn(ap, ap.ScheduledAt))
	require.NoError(t, Complete(ap, ap.ScheduledAt.Add(30*time.Minute), "", []string{"cash"}))
}

func TestCompletePaymentMethodRules(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("multiple methods require an explicit pick", func(t *testing.T) {
		ap := pendingAppointment()
		err := Complete(ap, now, "", []string{"cash", "card"})
		assert.True(t, httperr.IsBusiness(err, "payment_method_required"))
	})

	t.Run("picked method must be accepted", func(t *testing.T) {
		ap := pendingAppointment()
		err := Complete(ap, now, PaymentMobileTransfer, []string{"cash", "card"})
		assert.True(t, httperr.IsBusiness(err, "payment_method_not_accepted"))
	})

	t.Run("single method is applied implicitly", func(t *testing.T) {
		ap := pendingAppointment()
		require.NoError(t, Complete(ap, now, "", []string{"card"}))
		require.NotNil(t, ap.PaymentMethod)
		assert.Equal(t, "card", *ap.PaymentMethod)
	})

	t.Run("explicit accepted pick wins", func(t *testing.T) {
		ap := pendingAppointment()
		require.NoError(t, Complete(ap, now, PaymentCard, []string{"cash", "card"}))
		assert.Equal(t, "card", *ap.PaymentMethod)
	})
}

func TestRescheduleMovesStartOnly(t *testing.T) {
	ap := pendingAppointment()
	newStart := ap.ScheduledAt.Add(2 * time.Hour)

	require.NoError(t, Reschedule(ap, newStart))
	assert.Equal(t, newStart, ap.ScheduledAt)
	assert.Equal(t, string(StatusPending), ap.Status)
}

func TestVerifyAdvancePayment(t *testing.T) {
	t.Run("no sub-state", func(t *testing.T) {
		ap := pendingAppointment()
		err := VerifyAdvancePayment(ap, AdvanceVerified)
		assert.True(t, httperr.IsBusiness(err, "no_advance_payment"))
	})

	t.Run("pending to verified, once", func(t *testing.T) {
		ap := pendingAppointment()
		pending := string(AdvancePending)
		ap.AdvancePaymentStatus = &pending

		require.NoError(t, VerifyAdvancePayment(ap, AdvanceVerified))
		assert.Equal(t, string(AdvanceVerified), *ap.AdvancePaymentStatus)

		err := VerifyAdvancePayment(ap, AdvanceRejected)
		assert.True(t, httperr.IsBusiness(err, "advance_already_verified"))
	})

	t.Run("sub-state never blocks the main transition", func(t *testing.T) {
		ap := pendingAppointment()
		pending := string(AdvancePending)
		ap.AdvancePaymentStatus = &pending

		require.NoError(t, Complete(ap, ap.ScheduledAt.Add(time.Hour), "", []string{"cash"}))
		assert.Equal(t, string(AdvancePending), *ap.AdvancePaymentStatus)
	})
}
