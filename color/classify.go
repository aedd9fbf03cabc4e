package color

import (
	"errors"
	"fmt"
)

// ErrNoLight is returned when the clear channel reads zero and the colour
// channels cannot be normalized.
var ErrNoLight = errors.New("clear channel is zero")

// Raw holds one frame of photodiode counts.
type Raw struct {
	Clear uint16
	Red   uint16
	Green uint16
	Blue  uint16
}

// RGB holds colour channels scaled against the clear channel to 0..255.
type RGB struct {
	R, G, B float64
}

func (c RGB) String() string {
	return fmt.Sprintf("R: %.2f, G: %.2f, B: %.2f", c.R, c.G, c.B)
}

// Parameters tune the colour decision.
//
// BlackLimit separates dark from bright readings when no channel stands out.
// Hysteresis is the minimum channel spread required to name a colour.
// Offset scales the channel average a channel must exceed to count.
type Parameters struct {
	BlackLimit int     `yaml:"black_limit"`
	Hysteresis int     `yaml:"hysteresis"`
	Offset     float64 `yaml:"offset"`
}

func DefaultParameters() Parameters {
	return Parameters{
		BlackLimit: 1000,
		Hysteresis: 25,
		Offset:     1.1,
	}
}

// Class is a 3-bit colour mask: bit 0 red, bit 1 green, bit 2 blue. Several
// bits may be set at once. ClassDark and ClassBright are also returned when
// the channel spread is below the hysteresis, decided by brightness alone.
type Class uint8

const (
	ClassDark    Class = 0
	ClassRed     Class = 1
	ClassGreen   Class = 2
	ClassYellow  Class = ClassRed | ClassGreen
	ClassBlue    Class = 4
	ClassMagenta Class = ClassRed | ClassBlue
	ClassCyan    Class = ClassGreen | ClassBlue
	ClassBright  Class = ClassRed | ClassGreen | ClassBlue
)

var classNames = [...]string{"dark", "red", "green", "yellow", "blue", "magenta", "cyan", "bright"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// Has reports whether all bits of other are set in c.
func (c Class) Has(other Class) bool {
	return c&other == other
}

// Normalize scales the colour channels by 255/clear.
func Normalize(raw Raw) (RGB, error) {
	if raw.Clear == 0 {
		return RGB{}, ErrNoLight
	}
	clear := float64(raw.Clear)
	return RGB{
		R: float64(raw.Red) * 255 / clear,
		G: float64(raw.Green) * 255 / clear,
		B: float64(raw.Blue) * 255 / clear,
	}, nil
}

// Classify decides the colour class of a normalized reading. clear is the
// clear channel of the same frame.
func Classify(rgb RGB, clear int, p Parameters) Class {
	dif := max(rgb.R, rgb.G, rgb.B) - min(rgb.R, rgb.G, rgb.B)
	if dif < float64(p.Hysteresis) {
		if clear < p.BlackLimit {
			return ClassDark
		}
		return ClassBright
	}
	avr := (rgb.R + rgb.G + rgb.B) / 3 * p.Offset
	var c Class
	if rgb.R > avr {
		c |= ClassRed
	}
	if rgb.G > avr {
		c |= ClassGreen
	}
	if rgb.B > avr {
		c |= ClassBlue
	}
	return c
}

// ClassifyRaw normalizes and classifies one frame. A frame with no light on
// the clear channel is dark.
func ClassifyRaw(raw Raw, p Parameters) Class {
	rgb, err := Normalize(raw)
	if err != nil {
		return ClassDark
	}
	return Classify(rgb, int(raw.Clear), p)
}
