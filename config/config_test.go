package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/colorsense/color"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colorsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0x29, cfg.Address)
	assert.Equal(t, color.DefaultParameters(), cfg.Parameters)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
adapter: generic
device: "1"
address: 0x29
integration_time: 154ms
gain: 16x
parameters:
  black_limit: 1500
  hysteresis: 30
  offset: 1.2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AdapterGeneric, cfg.Adapter)
	assert.Equal(t, "1", cfg.Device)
	assert.Equal(t, 154*time.Millisecond, cfg.IntegrationTime)
	assert.Equal(t, color.Parameters{BlackLimit: 1500, Hysteresis: 30, Offset: 1.2}, cfg.Parameters)

	opts, err := cfg.SensorOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "parameters:\n  hysteresis: 10\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AdapterMCP2221, cfg.Adapter)
	assert.Equal(t, 10, cfg.Parameters.Hysteresis)
	assert.Equal(t, 1000, cfg.Parameters.BlackLimit)
	assert.InDelta(t, 1.1, cfg.Parameters.Offset, 1e-9)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown adapter", "adapter: ftdi\n"},
		{"bad address", "address: 0x80\n"},
		{"bad gain", "gain: 8x\n"},
		{"malformed yaml", "adapter: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
