// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the schema.

# Drivers

Open selects the driver from Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go, no cgo); pool pinned to one connection
  - postgres: github.com/lib/pq

	conn, err := db.Open(ctx, cfg)

Pool limits come from DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS and
DB_CONN_MAX_LIFETIME.

# Schema

CreateSchema creates tables if they don't exist:

  - question: id, question_text, pub_date
  - choice: id, question_id, choice_text, votes
  - route: id, data, point_count, distance_km, created_at

Indexes on question.pub_date and route.created_at back the
"newest first, limit N" reads.

# Seeding

SeedQuestions fills an empty question table with demo rows; main calls it
when started with -seed.
*/
package db
