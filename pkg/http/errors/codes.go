package errors

// Error codes for standardized error responses.
const (
	// Validation errors
	ErrCodeInvalidPayload = "invalid_payload"

	// Resource errors
	ErrCodeUsernameTaken = "username_taken"
	ErrCodeUnknownWindow = "unknown_leaderboard_window"

	// Gameplay errors
	ErrCodeGameNotFound       = "game_not_found"
	ErrCodeNotYourTurn        = "not_your_turn"
	ErrCodeQuestionsExhausted = "questions_exhausted"

	// WebSocket errors
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError    = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
