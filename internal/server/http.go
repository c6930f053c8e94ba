package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/config"
)

// Handlers collects the route handlers the API serves. Any nil entry
// leaves its route unregistered.
type Handlers struct {
	GameWS       http.Handler
	Users        http.HandlerFunc
	Questions    http.HandlerFunc
	SoloGames    http.HandlerFunc
	Leaderboards http.HandlerFunc
}

// NewHTTPServer wires the API routes: health, metrics, REST reads and
// the game WebSocket endpoint.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, rdb); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h.Users != nil {
		mux.HandleFunc("/v1/users", h.Users)
	}
	if h.Questions != nil {
		mux.HandleFunc("/v1/questions", h.Questions)
	}
	if h.SoloGames != nil {
		mux.HandleFunc("/v1/games/solo", h.SoloGames)
	}
	if h.Leaderboards != nil {
		mux.HandleFunc("/v1/leaderboards/", h.Leaderboards)
	}
	if h.GameWS != nil {
		mux.Handle("/ws/game", h.GameWS)
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
