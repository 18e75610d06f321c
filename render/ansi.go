package render

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode selects the escape sequences used for headless output
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // xterm-256 palette
	ColorModeNone                       // glyphs only
)

var colorModeNames = []string{"truecolor", "256", "none"}

func (m ColorMode) String() string {
	if int(m) < len(colorModeNames) {
		return colorModeNames[m]
	}
	return fmt.Sprintf("unknown(%d)", m)
}

// ParseColorMode accepts truecolor/24bit, 256, none, or auto (environment detection)
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	case "none", "off", "mono":
		return ColorModeNone, nil
	}
	return 0, fmt.Errorf("unknown color mode %q: want auto, truecolor, 256 or none", s)
}

// DetectColorMode determines terminal color capability from the environment
func DetectColorMode() ColorMode {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return ColorModeNone
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, env := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
		if os.Getenv(env) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to the nearest cube level
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			if d := abs(i - int(cubeValues[j])); d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// To256 returns the nearest xterm-256 palette index, preferring the gray ramp for near-neutral colors
func To256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cube := 16 + 36*cr + 6*cg + cb

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cube
	}
	// Ramp 232-255 covers levels 8..238
	switch {
	case gray < 4:
		return 16
	case gray > 243:
		return 231
	}
	grayIdx := min((gray-8)/10, 23)
	level := 8 + grayIdx*10
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	cubeDist := abs(r-int(cubeValues[cr])) + abs(g-int(cubeValues[cg])) + abs(b-int(cubeValues[cb]))
	if grayDist < cubeDist {
		return uint8(232 + grayIdx)
	}
	return cube
}

// fgEscape returns the foreground escape for c, empty for ColorModeNone
func fgEscape(c RGB, mode ColorMode) string {
	switch mode {
	case ColorMode256:
		return fmt.Sprintf("\x1b[38;5;%dm", To256(c))
	case ColorModeNone:
		return ""
	default:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	}
}
