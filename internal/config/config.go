package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"preguntados"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:4000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres    Postgres
	Redis       Redis
	Game        Game
	Leaderboard Leaderboard
}

// Postgres captures connection info for the question bank and user store.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// DSN renders the keyword/value connection string both pgxpool and the
// database/sql pgx driver accept.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds leaderboard storage configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Game groups gameplay defaults. Question counts are the match lengths
// fixed at creation time: 5 rounds solo, 10 rounds head-to-head.
type Game struct {
	SoloQuestions        int           `env:"SOLO_QUESTIONS" envDefault:"5"`
	VersusQuestions      int           `env:"VERSUS_QUESTIONS" envDefault:"10"`
	QuestionFetchTimeout time.Duration `env:"QUESTION_FETCH_TIMEOUT" envDefault:"4s"`
}

// Leaderboard governs ranking windows and broadcast behavior.
type Leaderboard struct {
	TopN          int           `env:"LEADERBOARD_TOP" envDefault:"50"`
	EntryTTL      time.Duration `env:"LEADERBOARD_ENTRY_TTL" envDefault:"720h"`
	PubSubChannel string        `env:"LEADERBOARD_CHANNEL" envDefault:"lb:updates"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadPostgres parses only the database settings, for tooling like the
// migrator that has no use for the rest of the application config.
func LoadPostgres(ctx context.Context) (Postgres, error) {
	pg := Postgres{}
	if err := env.ParseWithOptions(&pg, env.Options{RequiredIfNoDef: true}); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return pg, nil
}
