package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEngine.TopN, cfg.Engine.TopN)
	assert.Equal(t, 4, cfg.Engine.WriteConcurrency)
	assert.Equal(t, 90*time.Second, cfg.Engine.CallTimeout)
	assert.Equal(t, ProviderAnthropic, cfg.Provider.Kind)
	assert.Equal(t, 1000, cfg.Cache.Size)
	assert.Equal(t, "lru", cfg.Cache.Policy)
	assert.InDelta(t, 0.6, cfg.Blend.ValueWeight, 1e-9)
	assert.InDelta(t, 0.4, cfg.Blend.EaseWeight, 1e-9)
	assert.Equal(t, 25, cfg.Rationalize.BatchSize)
	assert.True(t, filepath.IsAbs(cfg.DBPath) || cfg.DBPath != "")
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/aiready-test.db
provider:
  kind: azure
  endpoint: https://example.openai.azure.com
  deployment: gpt4
  timeout: 15s
engine:
  top_n: 5
  write_concurrency: 2
cache:
  policy: 2q
  size: 64
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/aiready-test.db", cfg.DBPath)
	assert.Equal(t, ProviderAzure, cfg.Provider.Kind)
	assert.Equal(t, "gpt4", cfg.Provider.Deployment)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.Equal(t, 2, cfg.Engine.WriteConcurrency)
	assert.Equal(t, "2q", cfg.Cache.Policy)
	assert.Equal(t, 64, cfg.Cache.Size)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AIREADY_PROVIDER_API_KEY", "sk-test")
	t.Setenv("AIREADY_ENGINE_TOP_N", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Provider.APIKey)
	assert.Equal(t, 7, cfg.Engine.TopN)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "provider:\n  kind: carrier-pigeon\n"},
		{"zero concurrency", "engine:\n  write_concurrency: 0\n"},
		{"negative top n", "engine:\n  top_n: -1\n"},
		{"blend out of range", "blend:\n  value_weight: 1.5\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRationalizeBatchSize_Clamped(t *testing.T) {
	cfg := &Config{}
	for in, want := range map[int]int{0: 10, 5: 10, 25: 25, 50: 50, 200: 50} {
		cfg.Rationalize.BatchSize = in
		assert.Equal(t, want, cfg.RationalizeBatchSize(), "batch size %d", in)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x/y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}
