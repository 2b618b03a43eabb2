package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/realtime"
)

// RealtimeHandler upgrades authenticated viewers to a websocket carrying
// invalidation frames for their scope. Frames never carry data; viewers
// refetch over the regular API.
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// WatchMySchedule streams invalidations for the barber's own agenda.
func (h *RealtimeHandler) WatchMySchedule(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	topic := realtime.TopicBarber(barbershopID, barberID)
	h.hub.Serve(c.Writer, c.Request, topic)
}

// WatchShop streams invalidations for the whole shop (reception screens).
func (h *RealtimeHandler) WatchShop(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	topic := realtime.TopicShop(barbershopID)
	h.hub.Serve(c.Writer, c.Request, topic)
}
