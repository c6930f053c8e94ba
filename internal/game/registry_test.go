package game

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateInitialState(t *testing.T) {
	r := NewRegistry()
	p1 := Player{ConnID: uuid.New(), Username: "ana"}
	p2 := Player{ConnID: uuid.New(), Username: "beto"}

	m := r.Create(ModeVersus, 10, p1, p2)

	assert.True(t, strings.HasPrefix(m.ID, "game_"))
	assert.Equal(t, PhaseSpinning, m.Phase)
	assert.Equal(t, 0, m.CurrentPlayer)
	assert.Equal(t, 0, m.QuestionsAnswered)
	assert.Equal(t, 10, m.MaxQuestions)
	assert.Equal(t, 0, m.Scores[p1.ConnID])
	assert.Equal(t, 0, m.Scores[p2.ConnID])
	assert.Nil(t, m.CurrentQuestion)

	solo := r.Create(ModeSolo, 5, p1)
	assert.True(t, strings.HasPrefix(solo.ID, "solo_"))
	assert.NotEqual(t, m.ID, solo.ID)
}

func TestRegistryGetRemove(t *testing.T) {
	r := NewRegistry()
	m := r.Create(ModeSolo, 5, Player{ConnID: uuid.New(), Username: "ana"})

	got, ok := r.Get(m.ID)
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Equal(t, 1, r.Len())

	r.Remove(m.ID)
	_, ok = r.Get(m.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// Removing again is a no-op.
	r.Remove(m.ID)
}

func TestRegistryByPlayer(t *testing.T) {
	r := NewRegistry()
	p1 := Player{ConnID: uuid.New(), Username: "ana"}
	p2 := Player{ConnID: uuid.New(), Username: "beto"}

	m := r.Create(ModeVersus, 10, p1, p2)
	r.Create(ModeSolo, 5, Player{ConnID: uuid.New(), Username: "carla"})

	matches := r.ByPlayer(p1.ConnID)
	require.Len(t, matches, 1)
	assert.Same(t, m, matches[0])

	assert.Empty(t, r.ByPlayer(uuid.New()))
}
