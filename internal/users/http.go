package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/preguntados/trivia-server/internal/db/repository"
	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
)

// HTTPHandler exposes user registration and listing. Registration only
// exists so solo game history can reference an account; gameplay itself
// never requires one.
type HTTPHandler struct {
	repo   *repository.UserRepository
	logger zerolog.Logger
}

// NewHTTPHandler constructs a users HTTP handler.
func NewHTTPHandler(repo *repository.UserRepository, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		repo:   repo,
		logger: logger.With().Str("component", "users_http").Logger(),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handle serves the collection endpoint.
// Routes: POST /v1/users, GET /v1/users
func (h *HTTPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.register(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPayload, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidPayload, "username is required", "username")
		return
	}
	if len(req.Password) < 6 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidPayload, "password must be at least 6 characters", "password")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error().Err(err).Msg("password hash failed")
		httperrors.RespondInternalError(w, "Failed to register user")
		return
	}

	user, err := h.repo.Create(r.Context(), req.Username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeUsernameTaken, "Username is already taken")
			return
		}
		h.logger.Error().Err(err).Str("username", req.Username).Msg("user create failed")
		httperrors.RespondInternalError(w, "Failed to register user")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		h.logger.Warn().Err(err).Msg("user encode failed")
	}
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("user list failed")
		httperrors.RespondInternalError(w, "Failed to fetch users")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(users); err != nil {
		h.logger.Warn().Err(err).Msg("user list encode failed")
	}
}
