package ws

import "encoding/json"

// MessageType constants for the WebSocket protocol. The names and payload
// field casing follow the wire format the existing web client speaks.
const (
	// Client -> Server
	TypeJoinSolo        = "join_solo"
	TypeJoinVersus      = "join_1vs1"
	TypeRequestQuestion = "request_question_by_category"
	TypeAnswer          = "answer"

	// Server -> Client
	TypeGameStart            = "game_start"
	TypeQuestion             = "question_by_category"
	TypeUpdate               = "update"
	TypeNextSpin             = "next_spin"
	TypeOpponentDisconnected = "opponent_disconnected"
	TypeLeaderboardUpdate    = "leaderboard_update"
	TypeError                = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client payloads (incoming)

type JoinPayload struct {
	Username string `json:"username"`
}

type RequestQuestionPayload struct {
	GameID   string `json:"gameId"`
	Category string `json:"category"`
}

// AnswerPayload carries a submitted answer. Answer is nil when the client
// timer expired without a selection; that still consumes the round.
type AnswerPayload struct {
	GameID string  `json:"gameId"`
	Answer *string `json:"answer"`
}

// Server payloads (outgoing)

type GameStartPayload struct {
	GameID   string `json:"gameId"`
	YourTurn bool   `json:"yourTurn"`
	Opponent string `json:"opponent,omitempty"`
}

// QuestionRecord is the question bank record as delivered to clients.
// Correctness is always recomputed server-side; the correct field is
// forwarded so the client can reveal the right option after answering.
type QuestionRecord struct {
	ID       int64    `json:"id"`
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

type QuestionPayload struct {
	Question          QuestionRecord `json:"question"`
	YourTurn          bool           `json:"yourTurn"`
	QuestionsAnswered int            `json:"questionsAnswered"`
	TotalQuestions    int            `json:"totalQuestions"`
}

// PlayerSummary reports one player's final record in a game-over update.
type PlayerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type UpdatePayload struct {
	YourTurn          bool           `json:"yourTurn"`
	Score             map[string]int `json:"score"`
	QuestionsAnswered int            `json:"questionsAnswered"`
	TotalQuestions    int            `json:"totalQuestions"`
	GameOver          bool           `json:"gameOver"`
	NextRound         bool           `json:"nextRound,omitempty"`
	Winner            *string        `json:"winner,omitempty"`
	IsDraw            bool           `json:"isDraw,omitempty"`
	Player1           *PlayerSummary `json:"player1,omitempty"`
	Player2           *PlayerSummary `json:"player2,omitempty"`
}

type NextSpinPayload struct {
	CanSpin bool `json:"canSpin"`
}

type OpponentDisconnectedPayload struct {
	Message string `json:"message"`
}

type LeaderboardUpdatePayload struct {
	Window string             `json:"window"`
	Top    []LeaderboardEntry `json:"top"`
}

type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Score    int     `json:"score"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	Accuracy float64 `json:"accuracy"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage marshals a payload into a typed message. Marshal errors are
// impossible for the payload structs above, so they are swallowed.
func NewMessage(msgType string, payload any) Message {
	raw, _ := json.Marshal(payload)
	return Message{Type: msgType, Payload: raw}
}
