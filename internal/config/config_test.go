package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, ModelSourceBuiltin, cfg.Model.Source)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 1000, cfg.History.MaxRecords)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "5m")
	t.Setenv("MODEL_SOURCE", ModelSourceFile)
	t.Setenv("MODEL_FILE", "/etc/nomogram/model.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "postgres://nomogram:secret@db:5432/nomogram?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "/etc/nomogram/model.yaml", cfg.Model.File)
}

func TestLoad_ModelSourceErrors(t *testing.T) {
	t.Setenv("MODEL_SOURCE", ModelSourceFile)
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MODEL_SOURCE", "s3")
	_, err = Load()
	assert.Error(t, err)
}
