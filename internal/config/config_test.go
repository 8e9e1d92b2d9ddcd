package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotofacil/lotto"
)

func mapEnv(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lotofacil.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Analysis.Quantity)
	assert.Equal(t, 100, cfg.Analysis.Window)
	assert.Equal(t, 15, cfg.Analysis.Hot)
	assert.Equal(t, 15, cfg.Analysis.Cold)
	assert.Equal(t, 2000, cfg.Analysis.MaxAttemptsFactor)
	assert.Nil(t, cfg.Analysis.Seed)
	assert.Equal(t, time.Hour, cfg.Source.TTL)
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
analysis {
  quantity = 20
  window   = 50
  hot      = 12
  seed     = 7
}

source {
  file = "draws.xlsx"
  ttl  = "15m"
}
`)

	cfg, err := Load(path, mapEnv(map[string]string{
		"LOTOFACIL_QUANTITY": "5",
		"LOTOFACIL_URL":      "https://example.com/draws.csv",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Analysis.Quantity, "environment overrides file")
	assert.Equal(t, 50, cfg.Analysis.Window, "file overrides default")
	assert.Equal(t, 12, cfg.Analysis.Hot)
	assert.Equal(t, 15, cfg.Analysis.Cold, "default kept")
	require.NotNil(t, cfg.Analysis.Seed)
	assert.Equal(t, int64(7), *cfg.Analysis.Seed)
	assert.Equal(t, "draws.xlsx", cfg.Source.File)
	assert.Equal(t, "https://example.com/draws.csv", cfg.Source.URL)
	assert.Equal(t, 15*time.Minute, cfg.Source.TTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `analysis { quantity = "many" }`), nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `source { ttl = "soon" }`), nil)
	require.ErrorIs(t, err, lotto.ErrInvalidInput)

	_, err = Load("", mapEnv(map[string]string{"LOTOFACIL_HOT": "ten"}))
	require.ErrorIs(t, err, lotto.ErrInvalidInput)

	_, err = Load("", mapEnv(map[string]string{"LOTOFACIL_SEED": "x"}))
	require.ErrorIs(t, err, lotto.ErrInvalidInput)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"quantity zero", func(c *Config) { c.Analysis.Quantity = 0 }, "quantity"},
		{"quantity too large", func(c *Config) { c.Analysis.Quantity = 51 }, "quantity"},
		{"negative window", func(c *Config) { c.Analysis.Window = -1 }, "window"},
		{"sum min below range", func(c *Config) { c.Analysis.SumMin = 100 }, "sum min"},
		{"sum max below min", func(c *Config) { c.Analysis.SumMax = 170 }, "sum max"},
		{"sum max above range", func(c *Config) { c.Analysis.SumMax = 300 }, "sum max"},
		{"even max below min", func(c *Config) { c.Analysis.EvenMax = 5 }, "even max"},
		{"hot zero", func(c *Config) { c.Analysis.Hot = 0 }, "hot"},
		{"cold too large", func(c *Config) { c.Analysis.Cold = 26 }, "cold"},
		{"coverage target zero", func(c *Config) { c.Analysis.CoverageTarget = 0 }, "coverage target"},
		{"mix too large", func(c *Config) { c.Analysis.Mix = 16 }, "mix"},
		{"negative timeout", func(c *Config) { c.Source.Timeout = -time.Second }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, lotto.ErrInvalidInput)
			var verr *lotto.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestConstraints(t *testing.T) {
	t.Parallel()

	c := Default().Analysis.Constraints()
	assert.Equal(t, 180, c.SumMin)
	assert.Equal(t, 210, c.SumMax)
	assert.Equal(t, 6, c.EvenMin)
	assert.Equal(t, 9, c.EvenMax)
}

func TestLoadDotEnvIgnoresMissing(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
