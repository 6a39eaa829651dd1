// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollmaps/mysite/cliparse"
	"github.com/pollmaps/mysite/db"
	"github.com/pollmaps/mysite/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	// SetupTestDB already created it once
	require.NoError(t, db.CreateSchema(context.Background(), conn, cliparse.DatabaseSQLite))

	for _, table := range []string{"question", "choice", "route"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestCreateSchema_RouteNeedsTwoPoints(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	_, err := conn.Exec(`
		INSERT INTO route (id, data, point_count, distance_km, created_at)
		VALUES ('r', '1,1;', 1, 0, $1)
	`, time.Now().UTC())
	assert.Error(t, err)
}

func TestSeedQuestions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	n, err := db.SeedQuestions(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second run leaves existing data alone
	n, err = db.SeedQuestions(ctx, conn)
	require.NoError(t, err)
	assert.Zero(t, n)

	var count int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM question").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		dbType  string
		want    string
		wantErr bool
	}{
		{cliparse.DatabaseSQLite, "sqlite", false},
		{cliparse.DatabasePostgres, "postgres", false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			got, err := db.DriverName(tt.dbType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPoolConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "")
		t.Setenv("DB_MAX_IDLE_CONNS", "")
		t.Setenv("DB_CONN_MAX_LIFETIME", "")

		cfg, err := db.PoolConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, db.DefaultPoolConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "40")
		t.Setenv("DB_MAX_IDLE_CONNS", "4")
		t.Setenv("DB_CONN_MAX_LIFETIME", "15m")

		cfg, err := db.PoolConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.MaxOpenConns)
		assert.Equal(t, 4, cfg.MaxIdleConns)
		assert.Equal(t, 15*time.Minute, cfg.ConnMaxLifetime)
	})

	invalid := []struct {
		key   string
		value string
	}{
		{"DB_MAX_OPEN_CONNS", "-1"},
		{"DB_MAX_OPEN_CONNS", "many"},
		{"DB_MAX_IDLE_CONNS", "lots"},
		{"DB_MAX_IDLE_CONNS", "0"},
		{"DB_CONN_MAX_LIFETIME", "forever"},
		{"DB_CONN_MAX_LIFETIME", "-5m"},
	}
	for _, tt := range invalid {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("DB_MAX_OPEN_CONNS", "")
			t.Setenv("DB_MAX_IDLE_CONNS", "")
			t.Setenv("DB_CONN_MAX_LIFETIME", "")
			t.Setenv(tt.key, tt.value)

			_, err := db.PoolConfigFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestOpen_InvalidPoolEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	_, err := db.Open(context.Background(), testutil.GetTestConfig())
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := testutil.GetTestConfig()

	conn, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
	require.NoError(t, db.CreateSchema(context.Background(), conn, cfg.DatabaseType))
}

func TestOpen_UnknownType(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.DatabaseType = "oracle"

	_, err := db.Open(context.Background(), cfg)
	assert.Error(t, err)
}
