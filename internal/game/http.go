package game

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/db/repository"
	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
)

// HTTPHandler exposes game record creation over REST. Live match play
// happens over the WebSocket endpoint; this only seeds history rows.
type HTTPHandler struct {
	repo   *repository.GameRepository
	logger zerolog.Logger
}

// NewHTTPHandler constructs a game HTTP handler.
func NewHTTPHandler(repo *repository.GameRepository, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		repo:   repo,
		logger: logger.With().Str("component", "game_http").Logger(),
	}
}

type createSoloRequest struct {
	PlayerID int64 `json:"player_id"`
}

// HandleCreateSolo opens an in-progress solo game row for a registered
// player.
// Route: POST /v1/games/solo
func (h *HTTPHandler) HandleCreateSolo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req createSoloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPayload, "Invalid request body")
		return
	}
	if req.PlayerID <= 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidPayload, "player_id is required", "player_id")
		return
	}

	record, err := h.repo.CreateSolo(r.Context(), req.PlayerID)
	if err != nil {
		h.logger.Error().Err(err).Int64("player_id", req.PlayerID).Msg("solo game create failed")
		httperrors.RespondInternalError(w, "Failed to create game")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		h.logger.Warn().Err(err).Msg("game create encode failed")
	}
}
