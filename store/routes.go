// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pollmaps/mysite/geo"
	"github.com/pollmaps/mysite/models"
)

var ErrRouteNotFound = errors.New("route not found")

type RouteRepo struct {
	db *sql.DB
}

func NewRouteRepo(db *sql.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// Save stores a route. Points are kept in the map page encoding.
func (r *RouteRepo) Save(ctx context.Context, route models.Route) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO route (id, data, point_count, distance_km, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, route.ID, geo.EncodeRoute(route.Points), len(route.Points), route.DistanceKM, route.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("Save: ExecContext: %w", err)
	}
	return nil
}

func (r *RouteRepo) Get(ctx context.Context, id string) (models.Route, error) {
	const query = `
SELECT id, data, distance_km, created_at
FROM route
WHERE id = $1
`
	route, err := scanRoute(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, ErrRouteNotFound
	}
	if err != nil {
		return models.Route{}, fmt.Errorf("Get: %w", err)
	}
	return route, nil
}

// Latest returns up to limit routes, most recently saved first.
func (r *RouteRepo) Latest(ctx context.Context, limit int) ([]models.Route, error) {
	const query = `
SELECT id, data, distance_km, created_at
FROM route
ORDER BY created_at DESC
LIMIT $1
`
	if limit <= 0 {
		return []models.Route{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("Latest: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	routes := make([]models.Route, 0, limit)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("Latest: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Latest: rows.Err: %w", err)
	}
	return routes, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(s scanner) (models.Route, error) {
	var (
		route models.Route
		data  string
	)
	if err := s.Scan(&route.ID, &data, &route.DistanceKM, &route.CreatedAt); err != nil {
		return models.Route{}, err
	}
	points, err := geo.ParseRoute(data)
	if err != nil {
		return models.Route{}, fmt.Errorf("corrupt route %s: %w", route.ID, err)
	}
	route.Points = points
	return route, nil
}
