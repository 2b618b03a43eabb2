package dispatch

import (
	"sync"

	"github.com/BruksfildServices01/agenda-sync/internal/logging"
)

// ======================================================
// REGISTRY
// ======================================================

// Registry hands out one Dispatcher per resolved session scope, created on
// first use. In-flight tracking and last-error state belong to a single
// barbershop/barber pair and never bleed into another session's status.
type Registry struct {
	store     Store
	logger    *logging.Logger
	onSuccess SuccessHook

	mu          sync.Mutex
	dispatchers map[ResourceContext]*Dispatcher
}

func NewRegistry(store Store, logger *logging.Logger, onSuccess SuccessHook) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registry{
		store:       store,
		logger:      logger,
		onSuccess:   onSuccess,
		dispatchers: make(map[ResourceContext]*Dispatcher),
	}
}

// For returns the dispatcher scoped to rc. Repeated calls with the same
// scope return the same instance, so status reads see the session's own
// in-flight id.
func (r *Registry) For(rc ResourceContext) *Dispatcher {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dispatchers[rc]
	if !ok {
		d = NewDispatcher(r.store, r.logger, r.onSuccess)
		r.dispatchers[rc] = d
	}
	return d
}
