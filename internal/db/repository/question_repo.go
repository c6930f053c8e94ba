package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/preguntados/trivia-server/internal/question"
)

// QuestionRepository reads the curated question bank from Postgres.
type QuestionRepository struct {
	db DBTX
}

// NewQuestionRepository wraps a pgx connection pool for question lookups.
func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// RandomByCategory draws up to limit random questions for a category,
// skipping the excluded ids. An empty category matches everything.
// Returns fewer rows than limit when the remaining pool is smaller.
func (r *QuestionRepository) RandomByCategory(ctx context.Context, category string, exclude []int64, limit int) ([]question.Question, error) {
	if exclude == nil {
		exclude = []int64{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, category, text, options, correct_answer
		FROM questions
		WHERE ($1 = '' OR LOWER(category) = LOWER($1))
		  AND NOT (id = ANY($2))
		ORDER BY RANDOM()
		LIMIT $3`,
		category, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListAll returns every question in the bank.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category, text, options, correct_answer
		FROM questions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func scanQuestions(rows pgx.Rows) ([]question.Question, error) {
	var questions []question.Question
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Category, &q.Text, &q.Options, &q.Correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
