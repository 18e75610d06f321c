package parameter

import (
	"fmt"
	"strings"
)

// Enumerated option sets. Each type round-trips through its lowercase name
// (flags, YAML, SetParam) and cycles with Next/Prev for host key bindings

// SeedPattern selects the structure attached before the first particle spawns
type SeedPattern uint8

const (
	SeedPoint SeedPattern = iota
	SeedLine
	SeedCross
	SeedCircle
	SeedRing
	SeedBlock
	SeedNoise
	SeedScatter
	SeedMultiPoint
	SeedStarburst
)

var seedNames = []string{"point", "line", "cross", "circle", "ring", "block", "noise", "scatter", "multipoint", "starburst"}

var seedAliases = map[string]string{
	"filled":      "block",
	"noise-patch": "noise",
	"noisepatch":  "noise",
	"multi-point": "multipoint",
	"spokes":      "starburst",
	"star":        "starburst",
}

func (s SeedPattern) String() string { return enumName(seedNames, int(s)) }
func (s SeedPattern) Next() SeedPattern { return SeedPattern(cycle(int(s), len(seedNames), 1)) }
func (s SeedPattern) Prev() SeedPattern { return SeedPattern(cycle(int(s), len(seedNames), -1)) }
func (s SeedPattern) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *SeedPattern) UnmarshalText(b []byte) error {
	v, err := parseEnum(seedNames, seedAliases, string(b))
	if err != nil {
		return err
	}
	*s = SeedPattern(v)
	return nil
}

// Neighborhood selects the offset set used for contact counting
type Neighborhood uint8

const (
	VonNeumann Neighborhood = iota // 4 orthogonal
	Moore                          // 8, Chebyshev radius 1
	Extended                       // 24, Chebyshev radius 2
)

var neighborhoodNames = []string{"vonneumann", "moore", "extended"}

var neighborhoodAliases = map[string]string{
	"von-neumann": "vonneumann",
	"von_neumann": "vonneumann",
	"4":           "vonneumann",
	"8":           "moore",
	"24":          "extended",
}

func (n Neighborhood) String() string { return enumName(neighborhoodNames, int(n)) }
func (n Neighborhood) Next() Neighborhood { return Neighborhood(cycle(int(n), len(neighborhoodNames), 1)) }
func (n Neighborhood) Prev() Neighborhood {
	return Neighborhood(cycle(int(n), len(neighborhoodNames), -1))
}
func (n Neighborhood) MarshalText() ([]byte, error) { return []byte(n.String()), nil }
func (n *Neighborhood) UnmarshalText(b []byte) error {
	v, err := parseEnum(neighborhoodNames, neighborhoodAliases, string(b))
	if err != nil {
		return err
	}
	*n = Neighborhood(v)
	return nil
}

var (
	vonNeumannOffsets = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	mooreOffsets      = [][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	extendedOffsets = func() [][2]int {
		out := make([][2]int, 0, 24)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				if dx != 0 || dy != 0 {
					out = append(out, [2]int{dx, dy})
				}
			}
		}
		return out
	}()
)

// Offsets returns the (dx, dy) pairs of the neighborhood, origin excluded
// The slice is shared and must not be modified
func (n Neighborhood) Offsets() [][2]int {
	switch n {
	case Moore:
		return mooreOffsets
	case Extended:
		return extendedOffsets
	default:
		return vonNeumannOffsets
	}
}

// Max returns the neighborhood cardinality: 4, 8 or 24
func (n Neighborhood) Max() int { return len(n.Offsets()) }

// SpawnMode selects where new particles enter
type SpawnMode uint8

const (
	SpawnCircle SpawnMode = iota
	SpawnEdges
	SpawnCorners
	SpawnRandom
	SpawnTop
	SpawnBottom
	SpawnLeft
	SpawnRight
)

var spawnNames = []string{"circle", "edges", "corners", "random", "top", "bottom", "left", "right"}

func (s SpawnMode) String() string { return enumName(spawnNames, int(s)) }
func (s SpawnMode) Next() SpawnMode { return SpawnMode(cycle(int(s), len(spawnNames), 1)) }
func (s SpawnMode) Prev() SpawnMode { return SpawnMode(cycle(int(s), len(spawnNames), -1)) }
func (s SpawnMode) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *SpawnMode) UnmarshalText(b []byte) error {
	v, err := parseEnum(spawnNames, nil, string(b))
	if err != nil {
		return err
	}
	*s = SpawnMode(v)
	return nil
}

// Boundary selects what happens when a walk step leaves the lattice
type Boundary uint8

const (
	BoundaryClamp Boundary = iota
	BoundaryWrap
	BoundaryBounce
	BoundaryStick
	BoundaryAbsorb
)

var boundaryNames = []string{"clamp", "wrap", "bounce", "stick", "absorb"}

func (b Boundary) String() string { return enumName(boundaryNames, int(b)) }
func (b Boundary) Next() Boundary { return Boundary(cycle(int(b), len(boundaryNames), 1)) }
func (b Boundary) Prev() Boundary { return Boundary(cycle(int(b), len(boundaryNames), -1)) }
func (b Boundary) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
func (b *Boundary) UnmarshalText(text []byte) error {
	v, err := parseEnum(boundaryNames, nil, string(text))
	if err != nil {
		return err
	}
	*b = Boundary(v)
	return nil
}

// ColorMode selects the attachment attribute driving cell color
type ColorMode uint8

const (
	ColorAge ColorMode = iota
	ColorDistance
	ColorDensity
	ColorDirection
)

var colorModeNames = []string{"age", "distance", "density", "direction"}

func (c ColorMode) String() string { return enumName(colorModeNames, int(c)) }
func (c ColorMode) Next() ColorMode { return ColorMode(cycle(int(c), len(colorModeNames), 1)) }
func (c ColorMode) Prev() ColorMode { return ColorMode(cycle(int(c), len(colorModeNames), -1)) }
func (c ColorMode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ColorMode) UnmarshalText(b []byte) error {
	v, err := parseEnum(colorModeNames, nil, string(b))
	if err != nil {
		return err
	}
	*c = ColorMode(v)
	return nil
}

// ColorScheme selects one of the fixed palettes
type ColorScheme uint8

const (
	SchemeIce ColorScheme = iota
	SchemeFire
	SchemePlasma
	SchemeViridis
	SchemeRainbow
	SchemeGrayscale
	SchemeOcean
	SchemeNeon
)

var schemeNames = []string{"ice", "fire", "plasma", "viridis", "rainbow", "grayscale", "ocean", "neon"}

var schemeAliases = map[string]string{"gray": "grayscale", "grey": "grayscale", "greyscale": "grayscale"}

// SchemeCount is the number of palettes
const SchemeCount = 8

func (c ColorScheme) String() string { return enumName(schemeNames, int(c)) }
func (c ColorScheme) Next() ColorScheme { return ColorScheme(cycle(int(c), len(schemeNames), 1)) }
func (c ColorScheme) Prev() ColorScheme { return ColorScheme(cycle(int(c), len(schemeNames), -1)) }
func (c ColorScheme) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ColorScheme) UnmarshalText(b []byte) error {
	v, err := parseEnum(schemeNames, schemeAliases, string(b))
	if err != nil {
		return err
	}
	*c = ColorScheme(v)
	return nil
}

// Names returns the accepted canonical values for an enum parameter key, nil for non-enum keys
func Names(key string) []string {
	switch normalizeKey(key) {
	case "seed_pattern":
		return append([]string(nil), seedNames...)
	case "neighborhood":
		return append([]string(nil), neighborhoodNames...)
	case "spawn_mode":
		return append([]string(nil), spawnNames...)
	case "boundary":
		return append([]string(nil), boundaryNames...)
	case "color_mode":
		return append([]string(nil), colorModeNames...)
	case "color_scheme":
		return append([]string(nil), schemeNames...)
	}
	return nil
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func cycle(i, n, dir int) int {
	return ((i+dir)%n + n) % n
}

func parseEnum(names []string, aliases map[string]string, raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := aliases[s]; ok {
		s = alias
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}
