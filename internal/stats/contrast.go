package stats

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DarkText  = "#333333"
	LightText = "#ffffff"
)

// Luminance returns the WCAG relative luminance of a "#RRGGBB" color.
func Luminance(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("decode color %q: %w", hex, err)
	}
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B), nil
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastColor picks the text color that stays legible on a background of
// the given color: dark text when the luminance is above one half, light
// text otherwise. hex must be a valid "#RRGGBB" color; anything else gets
// light text.
func ContrastColor(hex string) string {
	l, err := Luminance(hex)
	if err != nil {
		return LightText
	}
	if l > 0.5 {
		return DarkText
	}
	return LightText
}
