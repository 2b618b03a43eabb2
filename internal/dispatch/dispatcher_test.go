package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	calls   int
	lastID  uint
	lastRC  ResourceContext
	err     error
	inCall  chan struct{} // closed when Transition starts, if set
	release chan struct{} // Transition blocks until closed, if set
}

func (s *fakeStore) Transition(
	ctx context.Context,
	rc ResourceContext,
	appointmentID uint,
	action Action,
	payload Payload,
) (*models.Appointment, error) {
	s.mu.Lock()
	s.calls++
	s.lastID = appointmentID
	s.lastRC = rc
	s.mu.Unlock()

	if s.inCall != nil {
		close(s.inCall)
	}
	if s.release != nil {
		<-s.release
	}

	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: appointmentID, Status: string(domain.StatusConfirmed)}, nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestDispatchRefusesUnresolvedContext(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, nil, nil)

	_, err := d.Dispatch(context.Background(), nil, 7, ActionCheckIn, Payload{})
	assert.True(t, httperr.IsKind(err, httperr.KindMissingContext))
	assert.Equal(t, 0, store.callCount(), "store must not be reached")

	_, err = d.Dispatch(context.Background(), &ResourceContext{BarberID: 3}, 7, ActionCheckIn, Payload{})
	assert.True(t, httperr.IsKind(err, httperr.KindMissingContext))
	assert.Equal(t, 0, store.callCount())

	assert.Error(t, d.LastError())
}

func TestDispatchRejectsUnknownAction(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, nil, nil)
	rc := &ResourceContext{BarbershopID: 1, BarberID: 2}

	_, err := d.Dispatch(context.Background(), rc, 7, Action("explode"), Payload{})
	assert.True(t, httperr.IsBusiness(err, "unknown_action"))
	assert.Equal(t, 0, store.callCount())
}

func TestDispatchTracksInFlightID(t *testing.T) {
	store := &fakeStore{
		inCall:  make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(store, nil, nil)
	rc := &ResourceContext{BarbershopID: 1, BarberID: 2}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = d.Dispatch(context.Background(), rc, 42, ActionComplete, Payload{})
	}()

	<-store.inCall
	id, busy := d.InFlight()
	assert.True(t, busy)
	assert.Equal(t, uint(42), id)

	close(store.release)
	<-done

	_, busy = d.InFlight()
	assert.False(t, busy)
}

func TestDispatchSuccessRunsHookAndClearsError(t *testing.T) {
	store := &fakeStore{}

	var hookAction Action
	var hookAp *models.Appointment
	d := NewDispatcher(store, nil, func(action Action, ap *models.Appointment) {
		hookAction = action
		hookAp = ap
	})
	rc := &ResourceContext{BarbershopID: 1, BarberID: 2}

	// seed a previous failure
	_, _ = d.Dispatch(context.Background(), nil, 1, ActionCheckIn, Payload{})
	require.Error(t, d.LastError())

	ap, err := d.Dispatch(context.Background(), rc, 9, ActionCheckIn, Payload{})
	require.NoError(t, err)
	assert.Equal(t, uint(9), ap.ID)
	assert.Equal(t, ActionCheckIn, hookAction)
	assert.Equal(t, ap, hookAp)
	assert.NoError(t, d.LastError())
}

func TestDispatchNormalizesStoreErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("driver: malformed response")}
	d := NewDispatcher(store, nil, nil)
	rc := &ResourceContext{BarbershopID: 1, BarberID: 2}

	_, err := d.Dispatch(context.Background(), rc, 9, ActionNoShow, Payload{})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindTransientNetwork),
		"unclassified failures collapse into the transient kind")
	assert.Equal(t, err, d.LastError())
}

func TestDispatchPassesScopeAndPayload(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, nil, nil)
	rc := &ResourceContext{BarbershopID: 5, BarberID: 6}

	_, err := d.Dispatch(context.Background(), rc, 11, ActionComplete, Payload{
		PaymentMethod: domain.PaymentCard,
	})
	require.NoError(t, err)
	assert.Equal(t, *rc, store.lastRC)
	assert.Equal(t, uint(11), store.lastID)
}
