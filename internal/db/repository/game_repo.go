package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Game lifecycle states persisted in the games table. In-progress match
// state never touches the database; only created and finished rows do.
const (
	GameStateInProgress = "in_progress"
	GameStateFinished   = "finished"
)

// GameRecord is a persisted game row.
type GameRecord struct {
	ID         int64      `json:"id"`
	Mode       string     `json:"mode"`
	State      string     `json:"state"`
	Player1ID  *int64     `json:"player1_id,omitempty"`
	Winner     *string    `json:"winner,omitempty"`
	IsDraw     bool       `json:"is_draw"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// GamePlayerResult is one player's final line in a finished game row.
type GamePlayerResult struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// GameResultParams captures a finished match for persistence.
type GameResultParams struct {
	Mode    string
	Winner  *string
	IsDraw  bool
	Players []GamePlayerResult
}

// GameRepository persists game records.
type GameRepository struct {
	db DBTX
}

// NewGameRepository wraps a pgx connection pool for game records.
func NewGameRepository(db DBTX) *GameRepository {
	return &GameRepository{db: db}
}

// CreateSolo inserts an in-progress solo game row for a registered player.
func (r *GameRepository) CreateSolo(ctx context.Context, playerID int64) (GameRecord, error) {
	var g GameRecord
	err := r.db.QueryRow(ctx, `
		INSERT INTO games (player1_id, mode, state)
		VALUES ($1, 'solo', $2)
		RETURNING id, mode, state, player1_id, created_at`,
		playerID, GameStateInProgress).Scan(&g.ID, &g.Mode, &g.State, &g.Player1ID, &g.CreatedAt)
	if err != nil {
		return GameRecord{}, fmt.Errorf("insert solo game: %w", err)
	}
	return g, nil
}

// InsertResult stores a finished match outcome with per-player scores.
func (r *GameRepository) InsertResult(ctx context.Context, params GameResultParams) error {
	players, err := json.Marshal(params.Players)
	if err != nil {
		return fmt.Errorf("marshal players: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO games (mode, state, winner, is_draw, players, finished_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		params.Mode, GameStateFinished, params.Winner, params.IsDraw, players)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}
