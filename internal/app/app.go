package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/preguntados/trivia-server/internal/config"
	"github.com/preguntados/trivia-server/internal/db/repository"
	"github.com/preguntados/trivia-server/internal/game"
	"github.com/preguntados/trivia-server/internal/leaderboard"
	"github.com/preguntados/trivia-server/internal/logging"
	"github.com/preguntados/trivia-server/internal/metrics"
	"github.com/preguntados/trivia-server/internal/question"
	"github.com/preguntados/trivia-server/internal/server"
	"github.com/preguntados/trivia-server/internal/users"
	"github.com/preguntados/trivia-server/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	lbBroadcaster *leaderboard.Broadcaster
	bgCancels     []context.CancelFunc
}

// New bootstraps config, logger, Postgres, Redis, the game coordinator
// and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, fmt.Sprintf("%s pool_max_conns=10", cfg.Postgres.DSN()))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	gameRepo := repository.NewGameRepository(pool)

	questionSvc := question.NewService(questionRepo, cfg.Game.QuestionFetchTimeout, logger)

	leaderboardSvc := leaderboard.NewService(redisClient, logger, leaderboard.ServiceOptions{
		TopN:          cfg.Leaderboard.TopN,
		PubSubChannel: cfg.Leaderboard.PubSubChannel,
		EntryTTL:      cfg.Leaderboard.EntryTTL,
	})

	hub := ws.NewHub(logger)
	gameMetrics := metrics.New(prometheus.DefaultRegisterer)

	coordinator := game.NewCoordinator(
		game.NewRegistry(),
		game.NewQueue(),
		questionSvc,
		hub,
		gameMetrics,
		game.Options{
			SoloQuestions:   cfg.Game.SoloQuestions,
			VersusQuestions: cfg.Game.VersusQuestions,
		},
		logger,
		game.NewHistoryRecorder(gameRepo),
		leaderboardSvc,
	)

	gameHandler := game.NewHandler(coordinator, logger)
	wsHandler := game.NewWSHandler(hub, gameHandler, gameMetrics, logger)

	usersHandler := users.NewHTTPHandler(userRepo, logger)
	questionsHandler := question.NewHTTPHandler(questionSvc, logger)
	soloGamesHandler := game.NewHTTPHandler(gameRepo, logger)
	lbHandler := leaderboard.NewHTTPHandler(leaderboardSvc, logger)

	lbBroadcaster := leaderboard.NewBroadcaster(redisClient, hub, leaderboardSvc.Channel(), logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		GameWS:       wsHandler,
		Users:        usersHandler.Handle,
		Questions:    questionsHandler.HandleList,
		SoloGames:    soloGamesHandler.HandleCreateSolo,
		Leaderboards: lbHandler.HandleTop,
	})

	return &Application{
		cfg:           cfg,
		logger:        logger,
		pool:          pool,
		redis:         redisClient,
		http:          apiServer,
		lbBroadcaster: lbBroadcaster,
		bgCancels:     make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.lbBroadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.lbBroadcaster.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("leaderboard broadcaster stopped")
			}
		}()
	}
}
