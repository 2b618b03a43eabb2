package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameDispatcherPerScope(t *testing.T) {
	reg := NewRegistry(&fakeStore{}, nil, nil)
	rc := ResourceContext{BarbershopID: 1, BarberID: 2}

	assert.Same(t, reg.For(rc), reg.For(rc))
}

func TestRegistryIsolatesScopes(t *testing.T) {
	store := &fakeStore{
		inCall:  make(chan struct{}),
		release: make(chan struct{}),
	}
	reg := NewRegistry(store, nil, nil)

	mine := ResourceContext{BarbershopID: 1, BarberID: 2}
	theirs := ResourceContext{BarbershopID: 8, BarberID: 9}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = reg.For(mine).Dispatch(context.Background(), &mine, 42, ActionComplete, Payload{})
	}()

	<-store.inCall
	// another shop's status read must not see my in-flight mutation
	_, busy := reg.For(theirs).InFlight()
	assert.False(t, busy)

	id, busy := reg.For(mine).InFlight()
	assert.True(t, busy)
	assert.Equal(t, uint(42), id)

	close(store.release)
	<-done
}

func TestRegistryKeepsErrorsPerScope(t *testing.T) {
	store := &fakeStore{err: errors.New("driver: connection reset")}
	reg := NewRegistry(store, nil, nil)

	mine := ResourceContext{BarbershopID: 1, BarberID: 2}
	theirs := ResourceContext{BarbershopID: 8, BarberID: 9}

	_, err := reg.For(mine).Dispatch(context.Background(), &mine, 7, ActionCheckIn, Payload{})
	require.Error(t, err)

	assert.Error(t, reg.For(mine).LastError())
	assert.NoError(t, reg.For(theirs).LastError())
}
