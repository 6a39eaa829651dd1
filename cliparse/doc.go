// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file can be loaded into the environment first:

	_ = cliparse.LoadDotEnv(".env")

Values already present in the environment are never overwritten.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: file:mysite.db)
  - LogLevel, LogFormat: slog configuration (default: info, json)
  - MapCenterLat, MapCenterLng, MapZoom: initial view of the maps page
  - Seed: insert demo questions at startup

# CLI Flags

	-p     Server port
	-d     Database URL
	-t     Database type
	-seed  Insert demo questions

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	LOG_LEVEL, LOG_FORMAT
	MAP_CENTER_LAT, MAP_CENTER_LNG, MAP_ZOOM

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - a numeric variable does not parse
  - DATABASE_TYPE is neither sqlite nor postgres
  - postgres is selected without a DATABASE_URL
*/
package cliparse
