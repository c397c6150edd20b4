package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rsrinivasan18/sarasai/internal/events"
)

// Idle connections get a heartbeat so intermediaries keep them open.
const heartbeatInterval = 30 * time.Second

// EventsHandler streams analysis lifecycle events over a websocket.
type EventsHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewEventsHandler creates a new events stream handler
func NewEventsHandler(bus *events.Bus, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		bus: bus,
		log: log.With().Str("component", "events_handler").Logger(),
	}
}

// HandleStream upgrades to a websocket and forwards bus events as JSON
// until the client disconnects.
func (h *EventsHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS is enforced by router middleware
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ch, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	h.log.Debug().Int("subscribers", h.bus.SubscriberCount()).Msg("Event stream client connected")

	// Reads are discarded; this also surfaces client disconnects as
	// context cancellation.
	ctx := conn.CloseRead(r.Context())

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-heartbeat.C:
			if err := h.ping(ctx, conn); err != nil {
				return
			}
		case event, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, event)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Event stream write failed, dropping client")
				return
			}
		}
	}
}

func (h *EventsHandler) ping(ctx context.Context, conn *websocket.Conn) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Ping(pingCtx)
}
