package main

import (
	"context"
	"errors"
	"math"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/colorsense/cmd/colorsense/console"
	"github.com/mklimuk/colorsense/color"
)

// hysteresisMargin keeps a white reference inside the ambiguous band.
const hysteresisMargin = 5

var errNoContrast = errors.New("white reading is not brighter than the dark one")

var tuneCmd = cli.Command{
	Name:  "tune",
	Usage: "suggest classification parameters from a dark and a white reference",
	Action: withSensor(func(c *cli.Context, ctx context.Context, s *color.TCS3472) error {
		err := console.WaitForEnter("Cover the sensor or hold it over a black surface")
		if err != nil {
			return console.Exit(1, "prompt error: %s", console.Red(err))
		}
		dark, err := s.Raw(ctx)
		if err != nil {
			return console.Exit(1, "error getting raw read: %s", console.Red(err))
		}
		printRaw(dark)
		err = console.WaitForEnter("Hold the sensor over a white surface")
		if err != nil {
			return console.Exit(1, "prompt error: %s", console.Red(err))
		}
		white, err := s.Raw(ctx)
		if err != nil {
			return console.Exit(1, "error getting raw read: %s", console.Red(err))
		}
		printRaw(white)

		p, err := suggestParameters(dark, white, s.Parameters())
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.PInfof(console.PictoWrench, "suggested configuration:")
		enc := yaml.NewEncoder(console.Writer())
		err = enc.Encode(map[string]color.Parameters{"parameters": p})
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		_ = enc.Close()

		answer, err := console.YesOrNo("Classify a sample with these parameters?")
		if err != nil || answer != console.Yes {
			return nil
		}
		s.SetParameters(p)
		err = console.WaitForEnter("Hold the sensor over the sample")
		if err != nil {
			return console.Exit(1, "prompt error: %s", console.Red(err))
		}
		class, err := s.Color(ctx)
		if err != nil {
			return console.Exit(1, "error getting color read: %s", console.Red(err))
		}
		console.Printf("%s %d %s\n", console.PictoPalette, class, console.Swatch(int(class), class.String()))
		return nil
	}),
}

// suggestParameters puts the black limit halfway between the references and
// widens the hysteresis so the white reference classifies as bright.
func suggestParameters(dark, white color.Raw, current color.Parameters) (color.Parameters, error) {
	if white.Clear <= dark.Clear {
		return current, errNoContrast
	}
	p := current
	p.BlackLimit = (int(dark.Clear) + int(white.Clear)) / 2
	rgb, err := color.Normalize(white)
	if err != nil {
		return current, err
	}
	spread := max(rgb.R, rgb.G, rgb.B) - min(rgb.R, rgb.G, rgb.B)
	p.Hysteresis = max(current.Hysteresis, int(math.Ceil(spread))+hysteresisMargin)
	return p, nil
}
