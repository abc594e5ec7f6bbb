package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Rates, cfg.Rates)
	assert.Equal(t, "cli", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "premium.yaml", `
server:
  address: ":9090"
  read_timeout: 3s
rates:
  path: /etc/premium/rates.hcl
  timezone: UTC
output:
  format: json
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, Default().Server.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "/etc/premium/rates.hcl", cfg.Rates.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)

	loc, err := cfg.Rates.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

// TestEnvOverridesFile proves PREMIUM_* variables win over the file
func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "premium.yaml", "server:\n  address: \":9090\"\n")
	t.Setenv("PREMIUM_SERVER_ADDRESS", ":7070")
	t.Setenv("PREMIUM_RATES_TIMEZONE", "America/New_York")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "America/New_York", cfg.Rates.Timezone)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad format", "output:\n  format: xml\n"},
		{"bad timezone", "rates:\n  timezone: Mars/Olympus\n"},
		{"bad body size", "server:\n  max_body_bytes: 0\n"},
		{"bad yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "premium.yaml", tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestGlobalConfig(t *testing.T) {
	original := Get()
	defer Set(original)

	cfg := Default()
	cfg.Output.Format = "yaml"
	Set(cfg)
	assert.Equal(t, "yaml", Get().Output.Format)
}
