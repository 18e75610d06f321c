package render

import "github.com/lucasb-eyer/go-colorful"

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// RGBWhite is the brightest terminal color
var RGBWhite = RGB{255, 255, 255}

// HighlightColor marks the most recent attachments regardless of color mode
var HighlightColor = RGBWhite

// FromColorful converts a go-colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
