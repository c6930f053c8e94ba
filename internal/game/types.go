package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/preguntados/trivia-server/internal/question"
)

// Match modes. ModeVersus keeps the "1vs1" name the wire protocol uses.
const (
	ModeSolo   = "solo"
	ModeVersus = "1vs1"
)

// Match phases. A match alternates spinning -> answering until the last
// round flips it to finished, at which point it leaves the registry.
const (
	PhaseSpinning  = "spinning"
	PhaseAnswering = "answering"
	PhaseFinished  = "finished"
)

// Player is an ephemeral participant, owned by the match (or queue) that
// holds it and gone when that match ends or the connection drops.
type Player struct {
	ConnID   uuid.UUID
	Username string
}

// Match is one playthrough with its own isolated state. All fields after
// mu are guarded by it; the coordinator locks a match for the whole of
// each transition, so events for the same match apply sequentially.
type Match struct {
	mu sync.Mutex

	ID      string
	Mode    string
	Players []Player

	Scores            map[uuid.UUID]int
	UsedQuestionIDs   []int64
	QuestionsAnswered int
	MaxQuestions      int
	Phase             string
	CurrentQuestion   *question.Question
	CurrentPlayer     int
	AnswersReceived   int

	// removed flips when the registry entry is deleted; transitions that
	// raced the deletion re-check it after acquiring mu and bail out.
	removed bool
}

// HasPlayer reports whether the connection is a participant.
func (m *Match) HasPlayer(connID uuid.UUID) bool {
	for _, p := range m.Players {
		if p.ConnID == connID {
			return true
		}
	}
	return false
}

// scoreMap renders the score table keyed by connection id string, the
// shape the update event carries.
func (m *Match) scoreMap() map[string]int {
	scores := make(map[string]int, len(m.Players))
	for _, p := range m.Players {
		scores[p.ConnID.String()] = m.Scores[p.ConnID]
	}
	return scores
}

func newMatchID(mode string) string {
	prefix := "game"
	if mode == ModeSolo {
		prefix = "solo"
	}
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
