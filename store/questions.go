// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pollmaps/mysite/models"
)

// LatestLimit is how many questions the polls index shows.
const LatestLimit = 5

type QuestionRepo struct {
	db *sql.DB
}

func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Latest returns up to limit questions, newest pub_date first.
func (r *QuestionRepo) Latest(ctx context.Context, limit int) ([]models.Question, error) {
	const query = `
SELECT id, question_text, pub_date
FROM question
ORDER BY pub_date DESC
LIMIT $1
`
	if limit <= 0 {
		return []models.Question{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("Latest: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	questions := make([]models.Question, 0, limit)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("Latest: Scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Latest: rows.Err: %w", err)
	}
	return questions, nil
}

// Create inserts a question and returns its ID.
func (r *QuestionRepo) Create(ctx context.Context, text string, pubDate time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO question (question_text, pub_date) VALUES ($1, $2) RETURNING id",
		text, pubDate.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("Create: %w", err)
	}
	return id, nil
}
