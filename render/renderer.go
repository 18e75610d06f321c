package render

import (
	"math"

	"github.com/lixenwraith/dla-sim/lattice"
	"github.com/lixenwraith/dla-sim/parameter"
)

// Render packs each 2×4 dot block of the lattice into one braille cell
// Color comes from the block's highest-order dot; Render has no side effects
func Render(lat *lattice.Lattice, p parameter.Params) Frame {
	f := NewFrame(lat.Cols(), lat.Rows())
	pal := PaletteFor(p.ColorScheme)
	hl := highlightFloor(lat, p.Highlight)

	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			mask, top, ok := lat.Block(col, row)
			if !ok {
				continue
			}
			var color RGB
			if top.Order > 0 && top.Order > hl {
				color = HighlightColor
			} else {
				color = pal.At(Value(top, lat, p))
			}
			f.Cells[row*f.Cols+col] = Cell{Mask: mask, Glyph: Glyph(mask), Color: color}
		}
	}
	return f
}

// highlightFloor returns the order above which attachments are highlighted, MaxInt when disabled
func highlightFloor(lat *lattice.Lattice, n int) int {
	if n <= 0 {
		return math.MaxInt
	}
	return lat.MaxOrder() - n
}

// Value returns the normalized [0, 1] palette coordinate of an occupied cell, invert applied
func Value(c lattice.Cell, lat *lattice.Lattice, p parameter.Params) float64 {
	var t float64
	switch p.ColorMode {
	case parameter.ColorDistance:
		t = c.Distance / math.Max(lat.CurrentRadius(), 1)
	case parameter.ColorDensity:
		t = float64(c.Density) / float64(p.Neighborhood.Max())
	case parameter.ColorDirection:
		t = (c.Direction + math.Pi) / (2 * math.Pi)
	default:
		t = float64(c.Order) / float64(max(lat.MaxOrder(), 1))
	}
	t = math.Max(0, math.Min(1, t))
	if p.Invert {
		t = 1 - t
	}
	return t
}
