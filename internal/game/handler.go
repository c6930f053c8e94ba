package game

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

// Handler decodes inbound client messages and routes them to the
// coordinator. One Handler serves all connections; per-connection state
// lives in the coordinator's registry and queue.
type Handler struct {
	coordinator *Coordinator
	logger      zerolog.Logger
}

// NewHandler creates the message router.
func NewHandler(coordinator *Coordinator, logger zerolog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		logger:      logger.With().Str("component", "game_handler").Logger(),
	}
}

// Handle dispatches one client message for the given connection.
func (h *Handler) Handle(ctx context.Context, connID uuid.UUID, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeJoinSolo:
		var payload ws.JoinPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.rejectPayload(connID, msg.Type)
			return nil
		}
		h.coordinator.JoinSolo(ctx, connID, displayName(payload.Username, connID))

	case ws.TypeJoinVersus:
		var payload ws.JoinPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.rejectPayload(connID, msg.Type)
			return nil
		}
		h.coordinator.JoinVersus(ctx, connID, displayName(payload.Username, connID))

	case ws.TypeRequestQuestion:
		var payload ws.RequestQuestionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.GameID == "" {
			h.rejectPayload(connID, msg.Type)
			return nil
		}
		h.coordinator.RequestQuestion(ctx, connID, payload.GameID, payload.Category)

	case ws.TypeAnswer:
		var payload ws.AnswerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.GameID == "" {
			h.rejectPayload(connID, msg.Type)
			return nil
		}
		h.coordinator.SubmitAnswer(ctx, connID, payload.GameID, payload.Answer)

	default:
		h.logger.Warn().Str("type", msg.Type).Str("conn_id", connID.String()).Msg("unknown message type")
		h.coordinator.sendError(connID, httperrors.ErrCodeUnknownMessageType, "Unknown message type: "+msg.Type)
	}
	return nil
}

// Disconnected tears down everything the connection participates in.
func (h *Handler) Disconnected(ctx context.Context, connID uuid.UUID) {
	h.coordinator.Disconnect(ctx, connID)
}

func (h *Handler) rejectPayload(connID uuid.UUID, msgType string) {
	h.logger.Warn().Str("type", msgType).Str("conn_id", connID.String()).Msg("malformed payload")
	h.coordinator.sendError(connID, httperrors.ErrCodeInvalidPayload, "Malformed payload for "+msgType)
}

// displayName falls back to an anonymous handle derived from the
// connection id when the client joins without a username.
func displayName(username string, connID uuid.UUID) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "player_" + connID.String()[:8]
	}
	return username
}
