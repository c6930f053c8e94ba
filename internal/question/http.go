package question

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
)

// HTTPHandler exposes the read-only question bank over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// HandleList responds with every question in the bank.
// Route: GET /v1/questions
func (h *HTTPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	questions, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("question list failed")
		httperrors.RespondInternalError(w, "Failed to fetch questions")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(questions); err != nil {
		h.logger.Warn().Err(err).Msg("question list encode failed")
	}
}
