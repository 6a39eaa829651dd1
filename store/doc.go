// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the storage layer behind the HTTP handlers.

Handlers receive a repo explicitly instead of reaching for a global:

	questions := store.NewQuestionRepo(db)
	latest, err := questions.Latest(ctx, store.LatestLimit)

Queries use $n placeholders, which both lib/pq and modernc.org/sqlite accept.
Timestamps are written in UTC so that ORDER BY on sqlite's text encoding
matches chronological order.
*/
package store
