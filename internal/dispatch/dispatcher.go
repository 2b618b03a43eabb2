package dispatch

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/metrics"
	"github.com/BruksfildServices01/agenda-sync/internal/models"
)

// ======================================================
// ACTIONS
// ======================================================

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no_show"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCheckIn, ActionComplete, ActionNoShow:
		return true
	}
	return false
}

type Payload struct {
	PaymentMethod domain.PaymentMethod
}

// ResourceContext is the resolved session scope, threaded explicitly
// through every call instead of living in ambient globals.
type ResourceContext struct {
	BarbershopID uint
	BarberID     uint
}

func (c *ResourceContext) Resolved() bool {
	return c != nil && c.BarbershopID != 0 && c.BarberID != 0
}

// Store executes one transition as a single atomic call keyed by id.
type Store interface {
	Transition(
		ctx context.Context,
		rc ResourceContext,
		appointmentID uint,
		action Action,
		payload Payload,
	) (*models.Appointment, error)
}

// SuccessHook runs after a transition lands; callers hang toasts and cache
// updates off it.
type SuccessHook func(action Action, ap *models.Appointment)

// ======================================================
// DISPATCHER
// ======================================================

// Dispatcher tracks one in-flight appointment id at a time so a caller can
// disable exactly the row being mutated. It does not serialize mutations:
// dispatches to different ids run independently and may land out of order.
// Rapid duplicate calls for the same id are the caller's problem to guard.
type Dispatcher struct {
	store     Store
	logger    *logging.Logger
	onSuccess SuccessHook

	mu          sync.Mutex
	inFlightID  uint
	hasInFlight bool
	lastErr     error
}

func NewDispatcher(store Store, logger *logging.Logger, onSuccess SuccessHook) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		store:     store,
		logger:    logger,
		onSuccess: onSuccess,
	}
}

// InFlight returns the id currently being mutated, if any.
func (d *Dispatcher) InFlight() (uint, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlightID, d.hasInFlight
}

// LastError returns the most recent dispatch failure, normalized.
func (d *Dispatcher) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Dispatch runs one transition. An unresolved context is refused without a
// store call: that's a programming/timing error on the caller's side, not
// something to send over the wire. Every failure comes back classified:
// malformed store errors are collapsed, never re-thrown as parse panics.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	rc *ResourceContext,
	appointmentID uint,
	action Action,
	payload Payload,
) (*models.Appointment, error) {

	if !rc.Resolved() {
		err := httperr.ErrMissingContext("missing_resource_context")
		d.logger.Error("dispatch refused: unresolved resource context",
			"appointment_id", appointmentID,
			"action", string(action),
		)
		d.setErr(err)
		return nil, err
	}

	if !action.Valid() {
		err := httperr.ErrBusiness("unknown_action")
		d.setErr(err)
		return nil, err
	}

	d.begin(appointmentID)
	defer d.end(appointmentID)

	ap, err := d.store.Transition(ctx, *rc, appointmentID, action, payload)
	if err != nil {
		norm := httperr.Normalize(err)
		d.setErr(norm)
		metrics.Transitions.WithLabelValues(string(action), "error").Inc()
		return nil, norm
	}

	metrics.Transitions.WithLabelValues(string(action), "ok").Inc()
	d.setErr(nil)
	if d.onSuccess != nil {
		d.onSuccess(action, ap)
	}
	return ap, nil
}

func (d *Dispatcher) begin(id uint) {
	d.mu.Lock()
	d.inFlightID = id
	d.hasInFlight = true
	d.mu.Unlock()
}

func (d *Dispatcher) end(id uint) {
	d.mu.Lock()
	// A later dispatch may have taken the slot; only clear our own.
	if d.hasInFlight && d.inFlightID == id {
		d.hasInFlight = false
		d.inFlightID = 0
	}
	d.mu.Unlock()
}

func (d *Dispatcher) setErr(err error) {
	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
}
