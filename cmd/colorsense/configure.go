package main

import (
	"context"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/colorsense/cmd/colorsense/console"
	"github.com/mklimuk/colorsense/color"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "read device id and status",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		id, err := s.ID(ctx)
		if err != nil {
			return console.Exit(1, "error reading id: %s", console.Red(err))
		}
		ready, err := s.Ready(ctx)
		if err != nil {
			return console.Exit(1, "error reading status: %s", console.Red(err))
		}
		console.Printf("id: %s\nvalid data: %s\n", console.White(strconv.FormatInt(int64(id), 16)), console.White(ready))
		return nil
	}),
}

// settle waits long enough for one integration cycle to complete at the new
// setting before a reading is taken.
func settle(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var integrationCmd = cli.Command{
	Name:      "integration",
	Usage:     "set integration time in milliseconds (0-612) and take a reading",
	ArgsUsage: "<ms>",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		if c.NArg() != 1 {
			return console.Exit(1, "expected 1 argument, got %d", c.NArg())
		}
		ms, err := strconv.Atoi(c.Args().Get(0))
		if err != nil {
			return console.Exit(1, "invalid integration time: %s", console.Red(err))
		}
		err = s.SetColourIntegrationTime(ctx, ms)
		if err != nil {
			return console.Exit(1, "error setting integration time: %s", console.Red(err))
		}
		console.PInfof(console.PictoTimer, "integration time set to %s ms", console.White(ms))
		if err := settle(ctx, settleTime); err != nil {
			return err
		}
		raw, err := s.Raw(ctx)
		if err != nil {
			return console.Exit(1, "error getting raw read: %s", console.Red(err))
		}
		printRaw(raw)
		return nil
	}),
}

// settleTime covers the longest integration cycle the device supports.
var settleTime = 615 * time.Millisecond

var gainCmd = cli.Command{
	Name:      "gain",
	Usage:     "set channel gain (1x, 4x, 16x, 60x) and take a reading",
	ArgsUsage: "<gain>",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		if c.NArg() != 1 {
			return console.Exit(1, "expected 1 argument, got %d", c.NArg())
		}
		g, err := color.ParseGain(c.Args().Get(0))
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		err = s.SetGain(ctx, g)
		if err != nil {
			return console.Exit(1, "error setting gain: %s", console.Red(err))
		}
		console.PInfof(console.PictoWrench, "gain set to %s", console.White(g))
		if err := settle(ctx, settleTime); err != nil {
			return err
		}
		raw, err := s.Raw(ctx)
		if err != nil {
			return console.Exit(1, "error getting raw read: %s", console.Red(err))
		}
		printRaw(raw)
		return nil
	}),
}

var paramsCmd = cli.Command{
	Name:      "params",
	Usage:     "classify with the given black limit, hysteresis and offset",
	ArgsUsage: "<limit> <hysteresis> <offset>",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		if c.NArg() != 3 {
			return console.Exit(1, "expected 3 arguments, got %d", c.NArg())
		}
		p, err := parseParameters(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
		if err != nil {
			return console.Exit(1, "invalid parameters: %s", console.Red(err))
		}
		s.SetParameters(p)
		class, err := s.GetColor(ctx)
		if err != nil {
			return console.Exit(1, "error getting color read: %s", console.Red(err))
		}
		console.Printf("%s %d %s\n", console.PictoPalette, class, console.Swatch(class, color.Class(class).String()))
		return nil
	}),
}

func parseParameters(limit, hysteresis, offset string) (color.Parameters, error) {
	var p color.Parameters
	var err error
	p.BlackLimit, err = strconv.Atoi(limit)
	if err != nil {
		return p, err
	}
	p.Hysteresis, err = strconv.Atoi(hysteresis)
	if err != nil {
		return p, err
	}
	p.Offset, err = strconv.ParseFloat(offset, 64)
	return p, err
}
