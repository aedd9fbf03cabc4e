package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mklimuk/colorsense"
	"github.com/mklimuk/colorsense/adapter"
	"github.com/mklimuk/colorsense/cmd/colorsense/console"
	"github.com/mklimuk/colorsense/color"
	"github.com/mklimuk/colorsense/config"
	"github.com/mklimuk/colorsense/i2c"
	"github.com/mklimuk/colorsense/snsctx"
)

// openBus is swapped in tests.
var openBus = openConfiguredBus

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("adapter") {
		cfg.Adapter = c.String("adapter")
	}
	if c.IsSet("device") {
		cfg.Device = c.String("device")
	}
	if c.IsSet("bus") {
		cfg.GobotBus = c.Int("bus")
	}
	if c.IsSet("addr") {
		cfg.Address = c.Int("addr")
	}
	return cfg, cfg.Validate()
}

func openConfiguredBus(cfg config.Config) (colorsense.I2CBus, func(), error) {
	switch cfg.Adapter {
	case config.AdapterGeneric:
		bus, err := i2c.NewGenericBus(cfg.Device)
		if err != nil {
			return nil, nil, err
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}, nil
	case config.AdapterGobot:
		npi := nanopi.NewNeoAdaptor()
		err := npi.I2cBusAdaptor.Connect()
		if err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		bus := i2c.NewGobotBus(npi, cfg.GobotBus)
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
			_ = npi.I2cBusAdaptor.Finalize()
		}, nil
	default:
		a := adapter.NewMCP2221()
		err := a.Init()
		if err != nil {
			return nil, nil, err
		}
		return a, func() {}, nil
	}
}

type sensorAction func(c *cli.Context, ctx context.Context, s *color.TCS3472) error

// withSensor opens the configured bus and hands a ready driver to fn.
func withSensor(fn sensorAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return console.Exit(1, "configuration error: %s", console.Red(err))
		}
		bus, closeBus, err := openBus(cfg)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer closeBus()
		opts, err := cfg.SensorOptions()
		if err != nil {
			return console.Exit(1, "configuration error: %s", console.Red(err))
		}
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		return fn(c, ctx, color.NewTCS3472(bus, opts...))
	}
}
