// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the mysite server.

mysite hosts two small web apps on one server: a polls app listing the
latest published questions, and a maps app where routes drawn on a Leaflet
map are saved with their length.

# Starting the Server

With no configuration the server uses a local sqlite file:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

Pass -seed to insert a few demo questions on an empty database.

# Configuration

Settings come from CLI flags, then environment variables, then an optional
.env file:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - LOG_LEVEL, LOG_FORMAT: slog level and json/text output
  - MAP_CENTER_LAT, MAP_CENTER_LNG, MAP_ZOOM: initial map view
  - DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME: pool limits

# Architecture

  - handlers: polls and maps HTTP handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - requestid: X-Request-ID propagation
  - templates: embedded HTML pages
  - store: question and route queries
  - geo: route parsing and haversine distance
  - models: Domain and request/response types
  - db: Connection and schema creation
  - logging: slog setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
