package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preguntados/trivia-server/internal/metrics"
	"github.com/preguntados/trivia-server/internal/question"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

type sourceCall struct {
	category string
	exclude  []int64
}

// stubSource serves questions from a fixed pool, honoring the exclusion
// list the way the repository does.
type stubSource struct {
	mu        sync.Mutex
	questions []question.Question
	err       error
	calls     []sourceCall
}

func (s *stubSource) Random(_ context.Context, count int, category string, exclude []int64) ([]question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	excluded := append([]int64(nil), exclude...)
	s.calls = append(s.calls, sourceCall{category: category, exclude: excluded})
	if s.err != nil {
		return nil, s.err
	}

	skip := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var out []question.Question
	for _, q := range s.questions {
		if skip[q.ID] {
			continue
		}
		out = append(out, q)
		if len(out) == count {
			break
		}
	}
	return out, nil
}

// captureSink records every delivered message per connection.
type captureSink struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]ws.Message
}

func newCaptureSink() *captureSink {
	return &captureSink{messages: make(map[uuid.UUID][]ws.Message)}
}

func (s *captureSink) Send(connID uuid.UUID, msg ws.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[connID] = append(s.messages[connID], msg)
	return nil
}

// last returns the most recent message of a type sent to a connection.
func (s *captureSink) last(t *testing.T, connID uuid.UUID, msgType string) ws.Message {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.messages[connID]) - 1; i >= 0; i-- {
		if s.messages[connID][i].Type == msgType {
			return s.messages[connID][i]
		}
	}
	t.Fatalf("no %s message delivered to %s", msgType, connID)
	return ws.Message{}
}

func (s *captureSink) count(connID uuid.UUID, msgType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, msg := range s.messages[connID] {
		if msg.Type == msgType {
			n++
		}
	}
	return n
}

type channelRecorder struct {
	results chan MatchResult
}

func newChannelRecorder() *channelRecorder {
	return &channelRecorder{results: make(chan MatchResult, 4)}
}

func (r *channelRecorder) RecordResult(_ context.Context, res MatchResult) error {
	r.results <- res
	return nil
}

func (r *channelRecorder) wait(t *testing.T) MatchResult {
	t.Helper()
	select {
	case res := <-r.results:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("no match result recorded")
		return MatchResult{}
	}
}

func decodePayload[T any](t *testing.T, msg ws.Message) T {
	t.Helper()
	var payload T
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	return payload
}

func questionPool(n int) []question.Question {
	pool := make([]question.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, question.Question{
			ID:       int64(i + 1),
			Category: "historia",
			Text:     "pregunta",
			Options:  []string{"a", "b", "c", "d"},
			Correct:  "a",
		})
	}
	return pool
}

func newTestCoordinator(src QuestionSource, recorders ...ResultRecorder) (*Coordinator, *captureSink) {
	sink := newCaptureSink()
	c := NewCoordinator(
		NewRegistry(),
		NewQueue(),
		src,
		sink,
		metrics.New(prometheus.NewRegistry()),
		Options{SoloQuestions: 5, VersusQuestions: 10},
		zerolog.Nop(),
		recorders...,
	)
	return c, sink
}

func strptr(s string) *string { return &s }

func playRound(t *testing.T, c *Coordinator, connID uuid.UUID, gameID, answer string) {
	t.Helper()
	ctx := context.Background()
	c.RequestQuestion(ctx, connID, gameID, "historia")
	c.SubmitAnswer(ctx, connID, gameID, strptr(answer))
}

func TestSoloMatchFullFlow(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	rec := newChannelRecorder()
	c, sink := newTestCoordinator(src, rec)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")

	start := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart))
	assert.True(t, start.YourTurn)
	assert.NotEmpty(t, start.GameID)
	assert.Empty(t, start.Opponent)

	for i := 0; i < 5; i++ {
		playRound(t, c, connID, start.GameID, "a")
	}

	final := decodePayload[ws.UpdatePayload](t, sink.last(t, connID, ws.TypeUpdate))
	assert.True(t, final.GameOver)
	assert.Equal(t, 5, final.QuestionsAnswered)
	assert.Equal(t, 5, final.Score[connID.String()])
	require.NotNil(t, final.Winner)
	assert.Equal(t, connID.String(), *final.Winner)
	assert.False(t, final.IsDraw)
	require.NotNil(t, final.Player1)
	assert.Equal(t, "ana", final.Player1.Username)
	assert.Nil(t, final.Player2)

	assert.Equal(t, 0, c.registry.Len())

	res := rec.wait(t)
	assert.Equal(t, ModeSolo, res.Mode)
	require.NotNil(t, res.Winner)
	assert.Equal(t, "ana", *res.Winner)
	require.Len(t, res.Players, 1)
	assert.Equal(t, 5, res.Players[0].Score)
	assert.True(t, res.Players[0].Won)

	// The match id is dead once the match finishes.
	c.RequestQuestion(ctx, connID, start.GameID, "historia")
	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, connID, ws.TypeError))
	assert.Equal(t, "game_not_found", errPayload.Code)
}

func TestVersusPairingAndTurnAlternation(t *testing.T) {
	src := &stubSource{questions: questionPool(30)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	assert.Equal(t, 1, c.queue.Len())
	assert.Empty(t, sink.messages[p1])

	c.JoinVersus(ctx, p2, "beto")
	assert.Equal(t, 0, c.queue.Len())

	start1 := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart))
	start2 := decodePayload[ws.GameStartPayload](t, sink.last(t, p2, ws.TypeGameStart))
	assert.Equal(t, start1.GameID, start2.GameID)
	assert.True(t, start1.YourTurn)
	assert.False(t, start2.YourTurn)
	assert.Equal(t, "beto", start1.Opponent)
	assert.Equal(t, "ana", start2.Opponent)

	gameID := start1.GameID

	// Player 1's turn: both players receive the question.
	c.RequestQuestion(ctx, p1, gameID, "historia")
	q1 := decodePayload[ws.QuestionPayload](t, sink.last(t, p1, ws.TypeQuestion))
	q2 := decodePayload[ws.QuestionPayload](t, sink.last(t, p2, ws.TypeQuestion))
	assert.True(t, q1.YourTurn)
	assert.False(t, q2.YourTurn)
	assert.Equal(t, q1.Question.ID, q2.Question.ID)

	// Half a round played: the counter only advances when the turn
	// wraps back to player 1.
	c.SubmitAnswer(ctx, p1, gameID, strptr("a"))
	update := decodePayload[ws.UpdatePayload](t, sink.last(t, p2, ws.TypeUpdate))
	assert.Equal(t, 0, update.QuestionsAnswered)
	assert.True(t, update.YourTurn)
	spin := decodePayload[ws.NextSpinPayload](t, sink.last(t, p2, ws.TypeNextSpin))
	assert.True(t, spin.CanSpin)
	spin1 := decodePayload[ws.NextSpinPayload](t, sink.last(t, p1, ws.TypeNextSpin))
	assert.False(t, spin1.CanSpin)

	c.RequestQuestion(ctx, p2, gameID, "historia")
	c.SubmitAnswer(ctx, p2, gameID, strptr("z"))

	update = decodePayload[ws.UpdatePayload](t, sink.last(t, p1, ws.TypeUpdate))
	assert.Equal(t, 1, update.QuestionsAnswered)
	assert.True(t, update.YourTurn)
	assert.Equal(t, 1, update.Score[p1.String()])
	assert.Equal(t, 0, update.Score[p2.String()])
}

func TestVersusFullMatchWinner(t *testing.T) {
	src := &stubSource{questions: questionPool(40)}
	rec := newChannelRecorder()
	c, sink := newTestCoordinator(src, rec)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "beto")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	// Ana answers correctly every round, Beto never does.
	for i := 0; i < 10; i++ {
		playRound(t, c, p1, gameID, "a")
		playRound(t, c, p2, gameID, "z")
	}

	final := decodePayload[ws.UpdatePayload](t, sink.last(t, p2, ws.TypeUpdate))
	assert.True(t, final.GameOver)
	assert.Equal(t, 10, final.QuestionsAnswered)
	require.NotNil(t, final.Winner)
	assert.Equal(t, p1.String(), *final.Winner)
	assert.False(t, final.IsDraw)
	require.NotNil(t, final.Player1)
	require.NotNil(t, final.Player2)
	assert.Equal(t, 10, final.Player1.Score)
	assert.Equal(t, 0, final.Player2.Score)

	res := rec.wait(t)
	require.NotNil(t, res.Winner)
	assert.Equal(t, "ana", *res.Winner)
	assert.False(t, res.IsDraw)
	assert.Equal(t, 10, res.Rounds)
}

func TestVersusDraw(t *testing.T) {
	src := &stubSource{questions: questionPool(40)}
	rec := newChannelRecorder()
	c, sink := newTestCoordinator(src, rec)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "beto")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	for i := 0; i < 10; i++ {
		playRound(t, c, p1, gameID, "a")
		playRound(t, c, p2, gameID, "a")
	}

	final := decodePayload[ws.UpdatePayload](t, sink.last(t, p1, ws.TypeUpdate))
	assert.True(t, final.GameOver)
	assert.Nil(t, final.Winner)
	assert.True(t, final.IsDraw)

	res := rec.wait(t)
	assert.Nil(t, res.Winner)
	assert.True(t, res.IsDraw)
}

func TestRequestQuestionOutOfTurn(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "beto")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, p2, gameID, "historia")

	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, p2, ws.TypeError))
	assert.Equal(t, "not_your_turn", errPayload.Code)
	assert.Zero(t, sink.count(p1, ws.TypeQuestion))
}

func TestOutOfTurnAnswerIgnored(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "beto")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, p1, gameID, "historia")
	c.SubmitAnswer(ctx, p2, gameID, strptr("a"))

	// No update was produced and the round is still live for player 1.
	assert.Zero(t, sink.count(p1, ws.TypeUpdate))
	m, ok := c.registry.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, PhaseAnswering, m.Phase)
	assert.Equal(t, 0, m.Scores[p2])
}

func TestDuplicateAnswerIgnored(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, connID, gameID, "historia")
	c.SubmitAnswer(ctx, connID, gameID, strptr("a"))
	c.SubmitAnswer(ctx, connID, gameID, strptr("a"))

	assert.Equal(t, 1, sink.count(connID, ws.TypeUpdate))
	final := decodePayload[ws.UpdatePayload](t, sink.last(t, connID, ws.TypeUpdate))
	assert.Equal(t, 1, final.QuestionsAnswered)
	assert.Equal(t, 1, final.Score[connID.String()])
}

func TestAnswerBeforeQuestionIgnored(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	c.SubmitAnswer(ctx, connID, gameID, strptr("a"))

	assert.Zero(t, sink.count(connID, ws.TypeUpdate))
	m, ok := c.registry.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, 0, m.QuestionsAnswered)
}

func TestNilAnswerIsIncorrectButConsumesRound(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, connID, gameID, "historia")
	c.SubmitAnswer(ctx, connID, gameID, nil)

	final := decodePayload[ws.UpdatePayload](t, sink.last(t, connID, ws.TypeUpdate))
	assert.Equal(t, 1, final.QuestionsAnswered)
	assert.Equal(t, 0, final.Score[connID.String()])
}

func TestAnswerComparisonIgnoresCaseAndWhitespace(t *testing.T) {
	src := &stubSource{questions: []question.Question{{
		ID: 1, Category: "geografía", Text: "capital", Options: []string{"París", "Roma"}, Correct: "París",
	}}}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, connID, gameID, "geografia")
	c.SubmitAnswer(ctx, connID, gameID, strptr("  parís "))

	final := decodePayload[ws.UpdatePayload](t, sink.last(t, connID, ws.TypeUpdate))
	assert.Equal(t, 1, final.Score[connID.String()])
}

func TestUsedQuestionsAreExcluded(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		c.RequestQuestion(ctx, connID, gameID, "historia")
		q := decodePayload[ws.QuestionPayload](t, sink.last(t, connID, ws.TypeQuestion))
		assert.False(t, seen[q.Question.ID], "question %d repeated", q.Question.ID)
		seen[q.Question.ID] = true
		c.SubmitAnswer(ctx, connID, gameID, strptr("a"))
	}

	// Every lookup after the first carried the ids already played.
	require.Len(t, src.calls, 5)
	assert.Len(t, src.calls[4].exclude, 4)
}

func TestExhaustedPoolKeepsMatchSpinning(t *testing.T) {
	src := &stubSource{questions: questionPool(1)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	playRound(t, c, connID, gameID, "a")

	// Pool is empty now; the request fails but nothing is consumed.
	c.RequestQuestion(ctx, connID, gameID, "historia")
	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, connID, ws.TypeError))
	assert.Equal(t, "questions_exhausted", errPayload.Code)

	m, ok := c.registry.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, PhaseSpinning, m.Phase)
	assert.Equal(t, 1, m.QuestionsAnswered)
	assert.Len(t, m.UsedQuestionIDs, 1)
}

func TestSourceErrorReportedAsExhausted(t *testing.T) {
	src := &stubSource{err: errors.New("db down")}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, connID, ws.TypeGameStart)).GameID

	c.RequestQuestion(ctx, connID, gameID, "historia")

	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, connID, ws.TypeError))
	assert.Equal(t, "questions_exhausted", errPayload.Code)

	m, ok := c.registry.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, PhaseSpinning, m.Phase)
}

func TestDisconnectForfeitsVersusMatch(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "beto")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	c.Disconnect(ctx, p1)

	notice := decodePayload[ws.OpponentDisconnectedPayload](t, sink.last(t, p2, ws.TypeOpponentDisconnected))
	assert.Contains(t, notice.Message, "forfeit")
	assert.Equal(t, 0, c.registry.Len())

	// The survivor's next event on the dead match id fails cleanly.
	c.SubmitAnswer(ctx, p2, gameID, strptr("a"))
	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, p2, ws.TypeError))
	assert.Equal(t, "game_not_found", errPayload.Code)
}

func TestDisconnectEndsSoloMatchSilently(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	connID := uuid.New()

	c.JoinSolo(ctx, connID, "ana")
	require.Equal(t, 1, c.registry.Len())

	c.Disconnect(ctx, connID)

	assert.Equal(t, 0, c.registry.Len())
	assert.Zero(t, sink.count(connID, ws.TypeOpponentDisconnected))
}

func TestDisconnectRemovesWaitingPlayer(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	c.JoinVersus(ctx, p1, "ana")
	c.Disconnect(ctx, p1)
	assert.Equal(t, 0, c.queue.Len())

	// The departed player is never matched.
	c.JoinVersus(ctx, p2, "beto")
	assert.Equal(t, 1, c.queue.Len())
	assert.Zero(t, sink.count(p2, ws.TypeGameStart))
}

func TestForeignConnectionCannotActOnSoloMatch(t *testing.T) {
	src := &stubSource{questions: questionPool(10)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	c.JoinSolo(ctx, owner, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, owner, ws.TypeGameStart)).GameID

	// A non-participant cannot spin on someone else's match.
	c.RequestQuestion(ctx, stranger, gameID, "historia")
	errPayload := decodePayload[ws.ErrorPayload](t, sink.last(t, stranger, ws.TypeError))
	assert.Equal(t, "game_not_found", errPayload.Code)
	assert.Zero(t, sink.count(owner, ws.TypeQuestion))

	// Nor answer into a live round: the round stays open for the owner
	// and the score table never grows a non-player key.
	c.RequestQuestion(ctx, owner, gameID, "historia")
	c.SubmitAnswer(ctx, stranger, gameID, strptr("a"))
	errPayload = decodePayload[ws.ErrorPayload](t, sink.last(t, stranger, ws.TypeError))
	assert.Equal(t, "game_not_found", errPayload.Code)

	m, ok := c.registry.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, PhaseAnswering, m.Phase)
	assert.Equal(t, 0, m.QuestionsAnswered)
	assert.Equal(t, map[uuid.UUID]int{owner: 0}, m.Scores)

	// The owner's answer still lands normally.
	c.SubmitAnswer(ctx, owner, gameID, strptr("a"))
	update := decodePayload[ws.UpdatePayload](t, sink.last(t, owner, ws.TypeUpdate))
	assert.Equal(t, 1, update.Score[owner.String()])
}

func TestSameUsernameWinnerRecordedOnce(t *testing.T) {
	src := &stubSource{questions: questionPool(40)}
	rec := newChannelRecorder()
	c, sink := newTestCoordinator(src, rec)
	ctx := context.Background()
	p1 := uuid.New()
	p2 := uuid.New()

	// Usernames are not unique; the win must attach to the connection.
	c.JoinVersus(ctx, p1, "ana")
	c.JoinVersus(ctx, p2, "ana")
	gameID := decodePayload[ws.GameStartPayload](t, sink.last(t, p1, ws.TypeGameStart)).GameID

	for i := 0; i < 10; i++ {
		playRound(t, c, p1, gameID, "a")
		playRound(t, c, p2, gameID, "z")
	}

	res := rec.wait(t)
	require.Len(t, res.Players, 2)
	for _, p := range res.Players {
		if p.ConnID == p1 {
			assert.True(t, p.Won)
		} else {
			assert.False(t, p.Won)
		}
	}
}

func TestConcurrentMatchesAreIsolated(t *testing.T) {
	src := &stubSource{questions: questionPool(30)}
	c, sink := newTestCoordinator(src)
	ctx := context.Background()
	a := uuid.New()
	b := uuid.New()

	c.JoinSolo(ctx, a, "ana")
	c.JoinSolo(ctx, b, "beto")
	gameA := decodePayload[ws.GameStartPayload](t, sink.last(t, a, ws.TypeGameStart)).GameID
	gameB := decodePayload[ws.GameStartPayload](t, sink.last(t, b, ws.TypeGameStart)).GameID
	require.NotEqual(t, gameA, gameB)

	playRound(t, c, a, gameA, "a")
	playRound(t, c, a, gameA, "a")
	playRound(t, c, b, gameB, "z")

	updA := decodePayload[ws.UpdatePayload](t, sink.last(t, a, ws.TypeUpdate))
	updB := decodePayload[ws.UpdatePayload](t, sink.last(t, b, ws.TypeUpdate))
	assert.Equal(t, 2, updA.QuestionsAnswered)
	assert.Equal(t, 2, updA.Score[a.String()])
	assert.Equal(t, 1, updB.QuestionsAnswered)
	assert.Equal(t, 0, updB.Score[b.String()])
}
