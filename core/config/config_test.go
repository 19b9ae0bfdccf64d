package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig_Defaults tests that a bare environment yields the documented defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.Equal(t, "catalog", cfg.Catalog.Bucket)
	assert.Equal(t, 0.8, cfg.Matching.FuzzyThreshold)
	assert.Equal(t, 50000, cfg.Batch.ChunkSize)
	assert.Equal(t, 0.95, cfg.Batch.PrematchThreshold)
	assert.Equal(t, 1000, cfg.Cache.BatchSize)
	assert.Equal(t, "shop-standardized", cfg.Transform.OutputBucket)
	assert.Equal(t, "runs", cfg.Transform.OutputPrefix)
}

// TestLoadConfig_EnvOverride tests that environment variables override defaults,
// including nested keys mapped through the underscore replacer.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("MATCHING_FUZZY_THRESHOLD", "0.9")
	t.Setenv("TRANSFORM_OUTPUT_BUCKET", "standardized-staging")

	cfg, err := LoadConfig(".")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 0.9, cfg.Matching.FuzzyThreshold)
	assert.Equal(t, "standardized-staging", cfg.Transform.OutputBucket)
}
