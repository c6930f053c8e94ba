package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
)

// HTTPHandler serves leaderboard reads over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// HandleTop returns the ranked entries for one window.
// Route: GET /v1/leaderboards/{window}?limit=N
func (h *HTTPHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	window := strings.TrimPrefix(r.URL.Path, "/v1/leaderboards/")
	window = strings.Trim(window, "/")
	if !KnownWindow(window) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownWindow, "Unknown leaderboard window: "+window)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidPayload, "limit must be a positive integer", "limit")
			return
		}
		limit = parsed
	}

	entries, err := h.svc.Top(r.Context(), window, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("window", window).Msg("leaderboard fetch failed")
		httperrors.RespondInternalError(w, "Failed to fetch leaderboard")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"window":  window,
		"entries": entries,
	}); err != nil {
		h.logger.Warn().Err(err).Msg("leaderboard encode failed")
	}
}
