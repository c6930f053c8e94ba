package game

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the authoritative owner of match lifetimes: it allocates
// ids, hands out live matches, and is the only place a match is deleted.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

// NewRegistry creates an empty match registry.
func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

// Create allocates a match in the spinning phase with zeroed scores and
// player 0 holding the first turn.
func (r *Registry) Create(mode string, maxQuestions int, players ...Player) *Match {
	scores := make(map[uuid.UUID]int, len(players))
	for _, p := range players {
		scores[p.ConnID] = 0
	}

	m := &Match{
		ID:           newMatchID(mode),
		Mode:         mode,
		Players:      players,
		Scores:       scores,
		MaxQuestions: maxQuestions,
		Phase:        PhaseSpinning,
	}

	r.mu.Lock()
	r.matches[m.ID] = m
	r.mu.Unlock()
	return m
}

// Get returns the live match for an id.
func (r *Registry) Get(id string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	return m, ok
}

// Remove deletes a match entry. No-op if already gone.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.matches, id)
	r.mu.Unlock()
}

// ByPlayer returns every live match the connection participates in.
func (r *Registry) ByPlayer(connID uuid.UUID) []*Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Match
	for _, m := range r.matches {
		if m.HasPlayer(connID) {
			out = append(out, m)
		}
	}
	return out
}

// Len reports the number of live matches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}
