// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/colorsense"
	"github.com/mklimuk/colorsense/color"
)

// Version is injected at build time.
var Version = "dev"

const (
	AdapterMCP2221 = "mcp2221"
	AdapterGeneric = "generic"
	AdapterGobot   = "gobot"
)

var ErrUnknownAdapter = errors.New("unknown adapter")

// Config describes how to reach the sensor and how to set it up. Zero
// IntegrationTime and empty Gain keep the device defaults.
type Config struct {
	Adapter         string           `yaml:"adapter"`
	Device          string           `yaml:"device"`
	GobotBus        int              `yaml:"gobot_bus"`
	Address         int              `yaml:"address"`
	Parameters      color.Parameters `yaml:"parameters"`
	IntegrationTime time.Duration    `yaml:"integration_time"`
	Gain            string           `yaml:"gain"`
}

func Default() Config {
	return Config{
		Adapter:    AdapterMCP2221,
		Device:     "/dev/i2c-1",
		GobotBus:   0,
		Address:    colorsense.DefaultAddress,
		Parameters: color.DefaultParameters(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Adapter {
	case AdapterMCP2221, AdapterGeneric, AdapterGobot:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdapter, c.Adapter)
	}
	if c.Address < 0 || c.Address > 0x7F {
		return fmt.Errorf("address %#x is not a 7-bit address", c.Address)
	}
	if c.Gain != "" {
		if _, err := color.ParseGain(c.Gain); err != nil {
			return err
		}
	}
	return nil
}

// SensorOptions turns the configuration into driver options.
func (c Config) SensorOptions() ([]color.TCS3472Opt, error) {
	opts := []color.TCS3472Opt{
		color.WithAddress(byte(c.Address)),
		color.WithParameters(c.Parameters),
	}
	if c.IntegrationTime != 0 {
		opts = append(opts, color.WithIntegrationTime(c.IntegrationTime))
	}
	if c.Gain != "" {
		g, err := color.ParseGain(c.Gain)
		if err != nil {
			return nil, err
		}
		opts = append(opts, color.WithGain(g))
	}
	return opts, nil
}
