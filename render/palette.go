package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/dla-sim/parameter"
)

// PaletteSize is the number of LUT entries per scheme
const PaletteSize = 256

// Palette is a precomputed gradient indexed by a normalized value
type Palette [PaletteSize]RGB

// At maps t in [0, 1] to a LUT entry, clamping out-of-range values
func (p *Palette) At(t float64) RGB {
	return p[Index(t)]
}

// Index maps t in [0, 1] to a LUT index; NaN maps to 0
func Index(t float64) int {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return PaletteSize - 1
	}
	return int(t*(PaletteSize-1) + 0.5)
}

// Keyframe stops per scheme, dark to bright so low values recede on a dark terminal
var schemeStops = map[parameter.ColorScheme][]string{
	parameter.SchemeIce:       {"#0b1a33", "#1f4e8c", "#3fa7d6", "#a8e0f0", "#ffffff"},
	parameter.SchemeFire:      {"#2a0000", "#8b0000", "#ff4500", "#ffae00", "#ffff99"},
	parameter.SchemePlasma:    {"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
	parameter.SchemeViridis:   {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	parameter.SchemeGrayscale: {"#303030", "#ffffff"},
	parameter.SchemeOcean:     {"#001f3f", "#0074d9", "#39cccc", "#7fdbff", "#e0ffff"},
	parameter.SchemeNeon:      {"#ff00ff", "#8000ff", "#00ffff", "#39ff14"},
}

// Rainbow hue sweep in HCL, stopping short of wrapping back to red
const (
	rainbowHueStart = 0.0
	rainbowHueEnd   = 300.0
	rainbowChroma   = 0.6
	rainbowLight    = 0.65
)

var palettes [parameter.SchemeCount]Palette

// init pre-computes all scheme LUTs so the render loop is a table lookup
func init() {
	for s := parameter.ColorScheme(0); s < parameter.SchemeCount; s++ {
		if s == parameter.SchemeRainbow {
			palettes[s] = buildHueSweep()
			continue
		}
		palettes[s] = buildGradient(schemeStops[s])
	}
}

// PaletteFor returns the shared LUT of a scheme; callers must not modify it
func PaletteFor(s parameter.ColorScheme) *Palette {
	if int(s) >= len(palettes) {
		return &palettes[parameter.SchemeIce]
	}
	return &palettes[s]
}

// buildGradient blends evenly spaced keyframes in Lab space
func buildGradient(stops []string) Palette {
	var lut Palette
	keys := make([]colorful.Color, len(stops))
	for i, h := range stops {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(fmt.Sprintf("palette stop %q: %v", h, err))
		}
		keys[i] = c
	}
	segs := float64(len(keys) - 1)
	for i := range lut {
		t := float64(i) / (PaletteSize - 1)
		pos := t * segs
		k := int(pos)
		if k >= len(keys)-1 {
			lut[i] = FromColorful(keys[len(keys)-1])
			continue
		}
		lut[i] = FromColorful(keys[k].BlendLab(keys[k+1], pos-float64(k)))
	}
	return lut
}

func buildHueSweep() Palette {
	var lut Palette
	for i := range lut {
		t := float64(i) / (PaletteSize - 1)
		h := rainbowHueStart + t*(rainbowHueEnd-rainbowHueStart)
		lut[i] = FromColorful(colorful.Hcl(h, rainbowChroma, rainbowLight))
	}
	return lut
}
