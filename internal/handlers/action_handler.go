package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-sync/internal/dispatch"
	domain "github.com/BruksfildServices01/agenda-sync/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-sync/internal/httperr"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

// ActionHandler routes every lifecycle transition through a dispatcher
// instead of calling usecases directly, so a misbehaving session without a
// resolved scope is refused before any store access. Dispatchers come from
// a registry keyed by session scope: one barbershop's in-flight state is
// invisible to another's status reads.
type ActionHandler struct {
	dispatchers *dispatch.Registry
}

func NewActionHandler(dispatchers *dispatch.Registry) *ActionHandler {
	return &ActionHandler{dispatchers: dispatchers}
}

type ActionRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *ActionHandler) CheckIn(c *gin.Context) {
	h.dispatch(c, dispatch.ActionCheckIn)
}

func (h *ActionHandler) Complete(c *gin.Context) {
	h.dispatch(c, dispatch.ActionComplete)
}

func (h *ActionHandler) NoShow(c *gin.Context) {
	h.dispatch(c, dispatch.ActionNoShow)
}

func (h *ActionHandler) dispatch(c *gin.Context, action dispatch.Action) {
	rc := resourceContextFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var payload dispatch.Payload
	if action == dispatch.ActionComplete {
		var req ActionRequest
		// Body is optional: a single configured payment method is implied.
		if err := c.ShouldBindJSON(&req); err == nil {
			payload.PaymentMethod = domain.PaymentMethod(req.PaymentMethod)
		}
	}

	ap, err := h.dispatchers.For(*rc).Dispatch(c.Request.Context(), rc, uint(id), action, payload)
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao executar ação.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

// Status exposes the caller's own dispatcher state so clients can disable
// the row being mutated, plus the last failure for retry affordances.
func (h *ActionHandler) Status(c *gin.Context) {
	d := h.dispatchers.For(*resourceContextFrom(c))
	inFlightID, busy := d.InFlight()

	out := gin.H{
		"busy": busy,
	}
	if busy {
		out["in_flight_id"] = inFlightID
	}
	if err := d.LastError(); err != nil {
		out["last_error"] = err.Error()
	}

	c.JSON(http.StatusOK, out)
}

// resourceContextFrom builds the dispatch scope from whatever the auth
// middleware resolved. Missing values stay zero; the dispatcher refuses
// the call instead of guessing.
func resourceContextFrom(c *gin.Context) *dispatch.ResourceContext {
	rc := &dispatch.ResourceContext{}
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			rc.BarberID = id
		}
	}
	if v, ok := c.Get(middleware.ContextBarbershopID); ok {
		if id, ok := v.(uint); ok {
			rc.BarbershopID = id
		}
	}
	return rc
}
