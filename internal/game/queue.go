package game

import (
	"sync"

	"github.com/google/uuid"
)

// Pair holds the two oldest waiters dequeued for a new versus match,
// in queue order (First spins first).
type Pair struct {
	First  Player
	Second Player
}

// Queue is the FIFO matchmaking queue. Players wait until a second
// player arrives; there is no timeout fallback, a waiter can sit
// indefinitely.
type Queue struct {
	mu      sync.Mutex
	waiting []Player
}

// NewQueue creates an empty matchmaking queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a player and, when at least two players are waiting,
// dequeues the two oldest as a pair for a new match.
func (q *Queue) Enqueue(p Player) *Pair {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.waiting = append(q.waiting, p)
	if len(q.waiting) < 2 {
		return nil
	}

	pair := &Pair{First: q.waiting[0], Second: q.waiting[1]}
	q.waiting = q.waiting[2:]
	return pair
}

// Remove deletes a waiting player by connection id, used on disconnect.
// No-op if the player is not queued.
func (q *Queue) Remove(connID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.waiting {
		if p.ConnID == connID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of waiting players.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
