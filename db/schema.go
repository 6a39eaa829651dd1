// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pollmaps/mysite/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dbType string) error {
	for _, stmt := range schemaStatements(dbType) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// The two dialects differ only in how integer keys are generated.
func schemaStatements(dbType string) []string {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dbType == cliparse.DatabasePostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS question (
			id ` + serial + `,
			question_text VARCHAR(200) NOT NULL,
			pub_date TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_question_pub_date ON question(pub_date)`,

		`CREATE TABLE IF NOT EXISTS choice (
			id ` + serial + `,
			question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
			choice_text VARCHAR(200) NOT NULL,
			votes INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id)`,

		`CREATE TABLE IF NOT EXISTS route (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			point_count INTEGER NOT NULL CHECK (point_count >= 2),
			distance_km DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_route_created_at ON route(created_at)`,
	}
}

var demoQuestions = []string{
	"What's new?",
	"Which route do you take to work?",
	"Best taco stand in town?",
}

// SeedQuestions inserts a few demo questions when the question table is empty.
// It returns the number of rows inserted.
func SeedQuestions(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM question").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i, text := range demoQuestions {
		_, err := db.ExecContext(ctx,
			"INSERT INTO question (question_text, pub_date) VALUES ($1, $2)",
			text, now.Add(-time.Duration(i)*time.Hour))
		if err != nil {
			return i, fmt.Errorf("failed to seed question: %w", err)
		}
	}
	return len(demoQuestions), nil
}
