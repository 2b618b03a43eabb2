package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/agenda-sync/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 45 * time.Second
)

// Hub bridges ChangeSource subscriptions to websocket viewers. Each viewer
// gets its own upstream subscription; a dropped socket releases it.
type Hub struct {
	source ChangeSource
	logger *logging.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	viewers int
}

// invalidateMessage is the only frame the hub ever sends. No payload:
// viewers refetch over the regular API.
type invalidateMessage struct {
	Type  string `json:"type"` // always "invalidate"
	Topic string `json:"topic"`
}

func NewHub(source ChangeSource, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
			// Browser clients come from arbitrary storefront origins;
			// auth happened before the upgrade.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Viewers reports currently attached sockets.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewers
}

// Serve upgrades the request and streams invalidation frames for topic
// until the client goes away or the subscription dies.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "topic", topic, "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	changes, stop, err := h.source.Subscribe(ctx, topic)
	if err != nil {
		h.logger.Warn("subscribe failed", "topic", topic, "err", err)
		return
	}
	defer stop()

	h.track(1)
	defer h.track(-1)

	// Reader only services control frames; clients never send data.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(invalidateMessage{Type: "invalidate", Topic: topic}); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) track(d int) {
	h.mu.Lock()
	h.viewers += d
	h.mu.Unlock()
}
