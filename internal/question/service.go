package question

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Store defines the question bank lookups the service needs
// (implemented by the Postgres repository).
type Store interface {
	RandomByCategory(ctx context.Context, category string, exclude []int64, limit int) ([]Question, error)
	ListAll(ctx context.Context) ([]Question, error)
}

// Service fronts the read-only question bank. Draws are random, filtered
// by category, and never repeat an excluded id; when the pool is smaller
// than the requested count it returns what is left.
type Service struct {
	store   Store
	timeout time.Duration
	logger  zerolog.Logger
}

// NewService creates a question service with a per-lookup timeout.
func NewService(store Store, timeout time.Duration, logger zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Service{
		store:   store,
		timeout: timeout,
		logger:  logger.With().Str("component", "question").Logger(),
	}
}

// Random draws count previously-unused questions for a category.
func (s *Service) Random(ctx context.Context, count int, category string, exclude []int64) ([]Question, error) {
	if count <= 0 {
		count = 1
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	questions, err := s.store.RandomByCategory(ctx, category, exclude, count)
	if err != nil {
		return nil, fmt.Errorf("random questions: %w", err)
	}
	return questions, nil
}

// ListAll returns the entire question bank.
func (s *Service) ListAll(ctx context.Context) ([]Question, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	questions, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}
