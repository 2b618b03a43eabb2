package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("scheduled").Valid())
	assert.False(t, Status("").Valid())
}

func TestFinalizedStatesAcceptNoTransition(t *testing.T) {
	finalized := []Status{StatusCompleted, StatusCancelled, StatusNoShow}

	for _, s := range finalized {
		assert.True(t, s.IsFinalized(), string(s))
		assert.Error(t, CanCheckIn(s), string(s))
		assert.Error(t, CanComplete(s), string(s))
		assert.Error(t, CanNoShow(s), string(s))
		assert.Error(t, CanCancel(s), string(s))
		assert.Error(t, CanReschedule(s), string(s))
	}
}

func TestCheckInOnlyFromPending(t *testing.T) {
	assert.NoError(t, CanCheckIn(StatusPending))
	assert.Error(t, CanCheckIn(StatusConfirmed))
}

func TestCompleteFromPendingOrConfirmed(t *testing.T) {
	assert.NoError(t, CanComplete(StatusPending))
	assert.NoError(t, CanComplete(StatusConfirmed))
}

func TestNoShowFromPendingOrConfirmed(t *testing.T) {
	assert.NoError(t, CanNoShow(StatusPending))
	assert.NoError(t, CanNoShow(StatusConfirmed))
}

func TestGuardErrorsAreClassified(t *testing.T) {
	err := CanCheckIn(StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.True(t, httperr.IsKind(err, httperr.KindValidationRejected))
}
