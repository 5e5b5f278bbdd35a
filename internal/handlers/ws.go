package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/alfagnish/usuarios-api/internal/events"
)

// writeWait bounds how long a single frame write may take.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Allow all origins (CORS is handled at the middleware level).
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler streams user store changes to WebSocket clients.
type EventsHandler struct {
	hub *events.Hub
	log zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *events.Hub, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log}
}

// Stream upgrades the connection to a WebSocket and writes every published
// event as a JSON text frame until the client goes away. Messages sent by
// the client are discarded.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so no event published after
	// the client sees the upgrade response is missed.
	id, ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug().Err(err).Msg("websocket read error")
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(evt); err != nil {
				h.log.Debug().Err(err).Msg("websocket write error")
				return
			}
		}
	}
}
