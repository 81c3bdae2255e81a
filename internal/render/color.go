package render

import (
	"fmt"
	"math"
	"strconv"
)

type RGB struct {
	R, G, B uint8
}

// Highlight is the default heat colour.
var Highlight = RGB{R: 100, G: 214, B: 92}

// CSS formats c with the given alpha as a CSS rgba() value, the way a web
// front end styles a token background.
func CSS(c RGB, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(clamp01(alpha), 'g', -1, 64))
}

// Blend composites c at alpha over a white background.
func Blend(c RGB, alpha float64) RGB {
	a := clamp01(alpha)
	mix := func(v uint8) uint8 {
		return uint8(math.Round(255 + (float64(v)-255)*a))
	}
	return RGB{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

const (
	ansiReset     = "\x1b[0m"
	ansiUnderline = "\x1b[4m"
	ansiBlackFG   = "\x1b[38;2;0;0;0m"
)

func ansiBG(c RGB) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

var shades = []rune(" ░▒▓█")

// shade picks a block glyph for plain-text output.
func shade(alpha float64) rune {
	a := clamp01(alpha)
	idx := int(math.Round(a * float64(len(shades)-1)))
	return shades[idx]
}
