package game

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/metrics"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Game access is unauthenticated, so any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades /ws/game requests and runs the connection pumps
// for their whole lifetime.
type WSHandler struct {
	hub     *ws.Hub
	handler *Handler
	metrics *metrics.Game
	logger  zerolog.Logger
}

// NewWSHandler creates the WebSocket endpoint handler.
func NewWSHandler(hub *ws.Hub, handler *Handler, m *metrics.Game, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:     hub,
		handler: handler,
		metrics: m,
		logger:  logger.With().Str("component", "ws_handler").Logger(),
	}
}

// ServeHTTP upgrades the request and blocks on the read pump until the
// client drops. Every connection gets a fresh id for its lifetime.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}

	connID := uuid.New()
	wsConn := ws.NewConnection(conn, h.logger.With().Str("conn_id", connID.String()).Logger())

	h.hub.Register(connID, wsConn)
	h.metrics.ConnectionsActive.Set(float64(h.hub.Count()))

	go wsConn.WritePump()

	ctx := r.Context()
	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handler.Handle(ctx, connID, msg)
	})

	// Read pump returned: the socket dropped or the client closed.
	h.handler.Disconnected(context.Background(), connID)
	h.hub.Unregister(connID)
	h.metrics.ConnectionsActive.Set(float64(h.hub.Count()))
}
