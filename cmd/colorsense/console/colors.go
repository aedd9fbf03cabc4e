package console

import "github.com/fatih/color"

// Available ANSI colors
var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	White  = color.New(color.FgHiWhite).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
)

// swatches follow the sensor's 3-bit class order: dark, red, green, yellow,
// blue, magenta, cyan, bright
var swatches = []*color.Color{
	color.New(color.FgHiBlack, color.Bold),
	color.New(color.FgRed, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgBlue, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgHiWhite, color.Bold),
}

// Swatch renders a colour class name in its own colour.
func Swatch(class int, name string) string {
	if class < 0 || class >= len(swatches) {
		return name
	}
	return swatches[class].Sprint(name)
}
