package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/metrics"
	"github.com/preguntados/trivia-server/internal/question"
	httperrors "github.com/preguntados/trivia-server/pkg/http/errors"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

// QuestionSource supplies random unused questions for a category
// (implemented by question.Service).
type QuestionSource interface {
	Random(ctx context.Context, count int, category string, exclude []int64) ([]question.Question, error)
}

// Sink delivers an event to a single connection (implemented by ws.Hub).
type Sink interface {
	Send(connID uuid.UUID, msg ws.Message) error
}

// ResultRecorder consumes finished-match outcomes (game history,
// leaderboard). Recorder failures never affect the match result.
type ResultRecorder interface {
	RecordResult(ctx context.Context, res MatchResult) error
}

// MatchResult is the final outcome handed to recorders.
type MatchResult struct {
	MatchID string
	Mode    string
	Winner  *string // winner's username; nil on draw
	IsDraw  bool
	Rounds  int
	Players []PlayerScore
}

// PlayerScore is one player's final line.
type PlayerScore struct {
	ConnID   uuid.UUID
	Username string
	Score    int
	Won      bool
}

// Options configures match lengths, fixed at match creation.
type Options struct {
	SoloQuestions   int
	VersusQuestions int
}

// DefaultOptions returns the production match lengths.
func DefaultOptions() Options {
	return Options{SoloQuestions: 5, VersusQuestions: 10}
}

// Coordinator is the per-match state machine: matchmaking, turn and
// phase control, question dispatch, answer adjudication, scoring and
// termination. All state lives in the injected registry and queue;
// nothing survives a process restart.
type Coordinator struct {
	registry  *Registry
	queue     *Queue
	source    QuestionSource
	sink      Sink
	recorders []ResultRecorder
	metrics   *metrics.Game
	opts      Options
	logger    zerolog.Logger
}

// NewCoordinator creates a coordinator around its owned state.
func NewCoordinator(
	registry *Registry,
	queue *Queue,
	source QuestionSource,
	sink Sink,
	m *metrics.Game,
	opts Options,
	logger zerolog.Logger,
	recorders ...ResultRecorder,
) *Coordinator {
	if opts.SoloQuestions <= 0 {
		opts.SoloQuestions = DefaultOptions().SoloQuestions
	}
	if opts.VersusQuestions <= 0 {
		opts.VersusQuestions = DefaultOptions().VersusQuestions
	}
	return &Coordinator{
		registry:  registry,
		queue:     queue,
		source:    source,
		sink:      sink,
		recorders: recorders,
		metrics:   m,
		opts:      opts,
		logger:    logger.With().Str("component", "coordinator").Logger(),
	}
}

// JoinSolo starts a single-player match immediately.
func (c *Coordinator) JoinSolo(ctx context.Context, connID uuid.UUID, username string) {
	m := c.registry.Create(ModeSolo, c.opts.SoloQuestions, Player{ConnID: connID, Username: username})
	c.metrics.MatchesStarted.WithLabelValues(ModeSolo).Inc()
	c.metrics.MatchesActive.Set(float64(c.registry.Len()))

	c.send(connID, ws.NewMessage(ws.TypeGameStart, ws.GameStartPayload{
		GameID:   m.ID,
		YourTurn: true,
	}))

	c.logger.Info().
		Str("game_id", m.ID).
		Str("conn_id", connID.String()).
		Str("username", username).
		Msg("solo match started")
}

// JoinVersus enqueues a player; when a second player is waiting the two
// oldest are paired into a new head-to-head match, queue order deciding
// who spins first.
func (c *Coordinator) JoinVersus(ctx context.Context, connID uuid.UUID, username string) {
	pair := c.queue.Enqueue(Player{ConnID: connID, Username: username})
	c.metrics.QueueDepth.Set(float64(c.queue.Len()))

	if pair == nil {
		c.logger.Info().
			Str("conn_id", connID.String()).
			Str("username", username).
			Msg("player waiting for opponent")
		return
	}

	m := c.registry.Create(ModeVersus, c.opts.VersusQuestions, pair.First, pair.Second)
	c.metrics.MatchesStarted.WithLabelValues(ModeVersus).Inc()
	c.metrics.MatchesActive.Set(float64(c.registry.Len()))

	c.send(pair.First.ConnID, ws.NewMessage(ws.TypeGameStart, ws.GameStartPayload{
		GameID:   m.ID,
		YourTurn: true,
		Opponent: pair.Second.Username,
	}))
	c.send(pair.Second.ConnID, ws.NewMessage(ws.TypeGameStart, ws.GameStartPayload{
		GameID:   m.ID,
		YourTurn: false,
		Opponent: pair.First.Username,
	}))

	c.logger.Info().
		Str("game_id", m.ID).
		Str("player1", pair.First.Username).
		Str("player2", pair.Second.Username).
		Msg("versus match started")
}

// RequestQuestion handles the spinning -> answering transition: the
// turn-holder asks for one unused question in a category and it is
// broadcast to the whole match. On an exhausted pool the round is not
// consumed and the match stays in spinning.
func (c *Coordinator) RequestQuestion(ctx context.Context, connID uuid.UUID, matchID, category string) {
	m, ok := c.registry.Get(matchID)
	if !ok {
		c.sendError(connID, httperrors.ErrCodeGameNotFound, "Game not found")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.removed || !m.HasPlayer(connID) {
		c.sendError(connID, httperrors.ErrCodeGameNotFound, "Game not found")
		return
	}
	if m.Mode == ModeVersus && m.Players[m.CurrentPlayer].ConnID != connID {
		c.sendError(connID, httperrors.ErrCodeNotYourTurn, "Not your turn")
		return
	}
	if m.Phase != PhaseSpinning {
		// Duplicate request while a question is live: expected under
		// network races, dropped without a reply.
		c.logger.Debug().Str("game_id", m.ID).Msg("question request outside spinning phase ignored")
		return
	}

	// The lookup runs under the match lock, so later events for this
	// match wait for it; other matches are unaffected.
	questions, err := c.source.Random(ctx, 1, NormalizeCategory(category), m.UsedQuestionIDs)
	if err != nil {
		c.logger.Warn().Err(err).Str("game_id", m.ID).Str("category", category).Msg("question lookup failed")
	}
	if err != nil || len(questions) == 0 {
		c.sendError(connID, httperrors.ErrCodeQuestionsExhausted,
			fmt.Sprintf("No questions left for category %s", category))
		return
	}

	q := questions[0]
	m.CurrentQuestion = &q
	m.UsedQuestionIDs = append(m.UsedQuestionIDs, q.ID)
	m.AnswersReceived = 0
	m.Phase = PhaseAnswering
	c.metrics.QuestionsServed.Inc()

	for i, p := range m.Players {
		c.send(p.ConnID, ws.NewMessage(ws.TypeQuestion, ws.QuestionPayload{
			Question:          toRecord(q),
			YourTurn:          i == m.CurrentPlayer,
			QuestionsAnswered: m.QuestionsAnswered,
			TotalQuestions:    m.MaxQuestions,
		}))
	}

	c.logger.Info().
		Str("game_id", m.ID).
		Int64("question_id", q.ID).
		Str("category", q.Category).
		Msg("question dispatched")
}

// SubmitAnswer handles the answering -> spinning|finished transition.
// A nil answer (client timer expired) is adjudicated like any other
// submission and is always incorrect. Guards drop, without state change:
// out-of-turn submissions, wrong-phase submissions, and duplicates for
// the same round (first submission wins).
func (c *Coordinator) SubmitAnswer(ctx context.Context, connID uuid.UUID, matchID string, answer *string) {
	m, ok := c.registry.Get(matchID)
	if !ok {
		c.sendError(connID, httperrors.ErrCodeGameNotFound, "Game not found")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.removed || !m.HasPlayer(connID) {
		c.sendError(connID, httperrors.ErrCodeGameNotFound, "Game not found")
		return
	}
	if m.Mode == ModeVersus && m.Players[m.CurrentPlayer].ConnID != connID {
		c.logger.Debug().Str("game_id", m.ID).Msg("out-of-turn answer ignored")
		return
	}
	if m.Phase != PhaseAnswering {
		c.logger.Debug().Str("game_id", m.ID).Msg("answer outside answering phase ignored")
		return
	}
	if m.AnswersReceived >= 1 {
		c.logger.Debug().Str("game_id", m.ID).Msg("duplicate answer ignored")
		return
	}
	m.AnswersReceived++

	correct := false
	if answer != nil && m.CurrentQuestion != nil {
		correct = strings.EqualFold(
			strings.TrimSpace(*answer),
			strings.TrimSpace(m.CurrentQuestion.Correct),
		)
	}
	if correct {
		m.Scores[connID]++
		c.metrics.Answers.WithLabelValues("correct").Inc()
	} else {
		c.metrics.Answers.WithLabelValues("incorrect").Inc()
	}

	m.CurrentQuestion = nil
	m.Phase = PhaseSpinning

	next := m.CurrentPlayer
	if m.Mode == ModeVersus {
		// A round completes once both players answered, i.e. when the
		// turn wraps back to player 0.
		next = (m.CurrentPlayer + 1) % 2
		m.CurrentPlayer = next
		if next == 0 {
			m.QuestionsAnswered++
		}
	} else {
		m.QuestionsAnswered++
	}

	c.logger.Info().
		Str("game_id", m.ID).
		Str("conn_id", connID.String()).
		Bool("correct", correct).
		Int("rounds", m.QuestionsAnswered).
		Msg("answer adjudicated")

	if m.QuestionsAnswered >= m.MaxQuestions {
		c.finish(m)
		return
	}

	scores := m.scoreMap()
	for i, p := range m.Players {
		c.send(p.ConnID, ws.NewMessage(ws.TypeUpdate, ws.UpdatePayload{
			YourTurn:          i == next,
			Score:             scores,
			QuestionsAnswered: m.QuestionsAnswered,
			TotalQuestions:    m.MaxQuestions,
			GameOver:          false,
			NextRound:         true,
		}))
		c.send(p.ConnID, ws.NewMessage(ws.TypeNextSpin, ws.NextSpinPayload{
			CanSpin: i == next,
		}))
	}
}

// Disconnect tears down everything the connection touches: its queue
// slot, and every match it plays in. A disconnect always ends the match;
// in versus mode the remaining player wins by forfeit.
func (c *Coordinator) Disconnect(ctx context.Context, connID uuid.UUID) {
	if c.queue.Remove(connID) {
		c.metrics.QueueDepth.Set(float64(c.queue.Len()))
		c.logger.Info().Str("conn_id", connID.String()).Msg("waiting player left queue")
	}

	for _, m := range c.registry.ByPlayer(connID) {
		m.mu.Lock()
		if m.removed {
			m.mu.Unlock()
			continue
		}
		if m.Mode == ModeVersus {
			for _, p := range m.Players {
				if p.ConnID != connID {
					c.send(p.ConnID, ws.NewMessage(ws.TypeOpponentDisconnected, ws.OpponentDisconnectedPayload{
						Message: "Your opponent has disconnected. You win by forfeit.",
					}))
				}
			}
		}
		c.destroy(m, metrics.ReasonForfeit)
		c.logger.Info().
			Str("game_id", m.ID).
			Str("conn_id", connID.String()).
			Msg("match ended by disconnect")
		m.mu.Unlock()
	}
}

// finish completes a match normally: final scores, winner by strict
// comparison (solo's sole player is trivially the winner), game-over
// broadcast, registry deletion, and async hand-off to the recorders.
// Caller holds m.mu.
func (c *Coordinator) finish(m *Match) {
	m.Phase = PhaseFinished

	p1 := m.Players[0]
	p1Score := m.Scores[p1.ConnID]
	player1 := &ws.PlayerSummary{ID: p1.ConnID.String(), Username: p1.Username, Score: p1Score}

	var player2 *ws.PlayerSummary
	var winnerConn *string
	isDraw := false

	res := MatchResult{
		MatchID: m.ID,
		Mode:    m.Mode,
		Rounds:  m.QuestionsAnswered,
	}

	if m.Mode == ModeVersus {
		p2 := m.Players[1]
		p2Score := m.Scores[p2.ConnID]
		player2 = &ws.PlayerSummary{ID: p2.ConnID.String(), Username: p2.Username, Score: p2Score}

		// Winner identity tracks the connection id; usernames are not
		// unique and only label the outcome.
		var winnerID *uuid.UUID
		switch {
		case p1Score > p2Score:
			winnerID = &p1.ConnID
			id := p1.ConnID.String()
			winnerConn = &id
			res.Winner = &p1.Username
		case p2Score > p1Score:
			winnerID = &p2.ConnID
			id := p2.ConnID.String()
			winnerConn = &id
			res.Winner = &p2.Username
		default:
			isDraw = true
		}
		res.IsDraw = isDraw
		res.Players = []PlayerScore{
			{ConnID: p1.ConnID, Username: p1.Username, Score: p1Score, Won: winnerID != nil && *winnerID == p1.ConnID},
			{ConnID: p2.ConnID, Username: p2.Username, Score: p2Score, Won: winnerID != nil && *winnerID == p2.ConnID},
		}
	} else {
		id := p1.ConnID.String()
		winnerConn = &id
		res.Winner = &p1.Username
		res.Players = []PlayerScore{
			{ConnID: p1.ConnID, Username: p1.Username, Score: p1Score, Won: true},
		}
	}

	scores := m.scoreMap()
	for _, p := range m.Players {
		c.send(p.ConnID, ws.NewMessage(ws.TypeUpdate, ws.UpdatePayload{
			YourTurn:          false,
			Score:             scores,
			QuestionsAnswered: m.QuestionsAnswered,
			TotalQuestions:    m.MaxQuestions,
			GameOver:          true,
			Winner:            winnerConn,
			IsDraw:            isDraw,
			Player1:           player1,
			Player2:           player2,
		}))
	}

	c.destroy(m, metrics.ReasonCompleted)
	c.logger.Info().
		Str("game_id", m.ID).
		Bool("draw", isDraw).
		Msg("match finished")

	// Recorders run detached; the match outcome is already delivered.
	go c.record(res)
}

// destroy removes the match from the registry exactly once.
// Caller holds m.mu.
func (c *Coordinator) destroy(m *Match, reason string) {
	m.removed = true
	c.registry.Remove(m.ID)
	c.metrics.MatchesActive.Set(float64(c.registry.Len()))
	c.metrics.MatchesEnded.WithLabelValues(reason).Inc()
}

func (c *Coordinator) record(res MatchResult) {
	ctx := context.Background()
	for _, rec := range c.recorders {
		if err := rec.RecordResult(ctx, res); err != nil {
			c.logger.Warn().Err(err).Str("game_id", res.MatchID).Msg("result recorder failed")
		}
	}
}

func (c *Coordinator) send(connID uuid.UUID, msg ws.Message) {
	if err := c.sink.Send(connID, msg); err != nil {
		c.logger.Warn().Err(err).Str("conn_id", connID.String()).Str("type", msg.Type).Msg("send failed")
	}
}

func (c *Coordinator) sendError(connID uuid.UUID, code, message string) {
	c.send(connID, ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message}))
}

func toRecord(q question.Question) ws.QuestionRecord {
	return ws.QuestionRecord{
		ID:       q.ID,
		Category: q.Category,
		Text:     q.Text,
		Options:  q.Options,
		Correct:  q.Correct,
	}
}
