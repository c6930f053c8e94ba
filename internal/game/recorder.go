package game

import (
	"context"
	"fmt"

	"github.com/preguntados/trivia-server/internal/db/repository"
)

// HistoryRecorder persists finished matches into the games table.
type HistoryRecorder struct {
	repo *repository.GameRepository
}

// NewHistoryRecorder creates a recorder backed by the game repository.
func NewHistoryRecorder(repo *repository.GameRepository) *HistoryRecorder {
	return &HistoryRecorder{repo: repo}
}

// RecordResult writes one finished match row.
func (r *HistoryRecorder) RecordResult(ctx context.Context, res MatchResult) error {
	players := make([]repository.GamePlayerResult, 0, len(res.Players))
	for _, p := range res.Players {
		players = append(players, repository.GamePlayerResult{
			Username: p.Username,
			Score:    p.Score,
		})
	}

	err := r.repo.InsertResult(ctx, repository.GameResultParams{
		Mode:    res.Mode,
		Winner:  res.Winner,
		IsDraw:  res.IsDraw,
		Players: players,
	})
	if err != nil {
		return fmt.Errorf("record match %s: %w", res.MatchID, err)
	}
	return nil
}
