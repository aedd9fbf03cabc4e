package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/colorsense/cmd/colorsense/console"
	"github.com/mklimuk/colorsense/color"
)

var lightCmd = cli.Command{
	Name:  "light",
	Usage: "read the clear channel",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		light, err := s.GetLight(ctx)
		if err != nil {
			return console.Exit(1, "error getting light read: %s", console.Red(err))
		}
		console.Printf("%s %s\n", console.PictoBulb, console.White(light))
		return nil
	}),
}

var rgbCmd = cli.Command{
	Name:  "rgb",
	Usage: "read red, green and blue scaled to 0-255",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		rgb, err := s.RGB(ctx)
		if errors.Is(err, color.ErrNoLight) {
			console.Warnf("no light on the clear channel")
			return nil
		}
		if err != nil {
			return console.Exit(1, "error getting rgb read: %s", console.Red(err))
		}
		console.Printf("R %s  G %s  B %s\n",
			console.Red(math.Round(rgb.R)), console.Green(math.Round(rgb.G)), console.White(math.Round(rgb.B)))
		return nil
	}),
}

var rawCmd = cli.Command{
	Name:  "raw",
	Usage: "read raw channel counts",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		raw, err := s.Raw(ctx)
		if err != nil {
			return console.Exit(1, "error getting raw read: %s", console.Red(err))
		}
		printRaw(raw)
		return nil
	}),
}

var colorCmd = cli.Command{
	Name:    "color",
	Aliases: []string{"colour"},
	Usage:   "classify the colour in front of the sensor (0-7)",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		class, err := s.GetColor(ctx)
		if err != nil {
			return console.Exit(1, "error getting color read: %s", console.Red(err))
		}
		console.Printf("%s %d %s\n", console.PictoPalette, class, console.Swatch(class, color.Class(class).String()))
		return nil
	}),
}

var watchCmd = cli.Command{
	Name:  "watch",
	Usage: "print readings periodically",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Value: time.Second,
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of readings, 0 runs until interrupted",
		},
	},
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		w := tabwriter.NewWriter(console.Writer(), 8, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "TIME\tCLEAR\tRED\tGREEN\tBLUE\tCLASS\n")
		_ = w.Flush()

		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()
		count := c.Int("count")
		for n := 0; count == 0 || n < count; n++ {
			if n > 0 {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
			raw, err := s.Raw(ctx)
			if err != nil {
				return console.Exit(1, "error getting raw read: %s", console.Red(err))
			}
			class := color.ClassifyRaw(raw, s.Parameters())
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n", time.Now().Format(time.TimeOnly),
				raw.Clear, raw.Red, raw.Green, raw.Blue, console.Swatch(int(class), class.String()))
			_ = w.Flush()
		}
		return nil
	}),
}

func printRaw(raw color.Raw) {
	console.Printf("clear %s  red %s  green %s  blue %s\n",
		console.White(raw.Clear), console.White(raw.Red), console.White(raw.Green), console.White(raw.Blue))
}
