package parameter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the value type of a parameter
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindEnum
)

// Field describes one tunable: its key, range and adjustment step
type Field struct {
	Key   string
	Group string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64
	// Wrap marks a cyclic range: Max is exclusive and Adjust wraps instead of clamping
	Wrap bool

	intRef   func(*Params) *int
	floatRef func(*Params) *float64
	boolRef  func(*Params) *bool
	enum     *enumAccess
}

type enumAccess struct {
	names   []string
	aliases map[string]string
	get     func(*Params) int
	set     func(*Params, int)
}

var fields = []Field{
	intField("particle_count", "growth", MinParticleCount, MaxParticleCount, 500, func(p *Params) *int { return &p.ParticleCount }),
	floatField("base_stickiness", "growth", 0.1, 1.0, 0.1, func(p *Params) *float64 { return &p.BaseStickiness }),
	enumField("seed_pattern", "growth", seedNames, seedAliases,
		func(p *Params) int { return int(p.SeedPattern) }, func(p *Params, v int) { p.SeedPattern = SeedPattern(v) }),
	intField("steps_per_frame", "growth", MinStepsPerFrame, MaxStepsPerFrame, 1, func(p *Params) *int { return &p.StepsPerFrame }),

	floatField("walk_step_size", "movement", 0.5, 5.0, 0.5, func(p *Params) *float64 { return &p.WalkStepSize }),
	wrapField("walk_angle", "movement", 0, 360, 15, func(p *Params) *float64 { return &p.WalkAngle }),
	floatField("walk_force", "movement", 0, 0.5, 0.05, func(p *Params) *float64 { return &p.WalkForce }),
	floatField("radial_bias", "movement", -0.3, 0.3, 0.05, func(p *Params) *float64 { return &p.RadialBias }),
	boolField("lattice_walk", "movement", func(p *Params) *bool { return &p.LatticeWalk }),
	boolField("adaptive_step", "movement", func(p *Params) *bool { return &p.AdaptiveStep }),
	floatField("adaptive_factor", "movement", 1, 10, 0.5, func(p *Params) *float64 { return &p.AdaptiveFactor }),

	enumField("neighborhood", "sticking", neighborhoodNames, neighborhoodAliases,
		func(p *Params) int { return int(p.Neighborhood) }, func(p *Params, v int) { p.Neighborhood = Neighborhood(v) }),
	intField("multi_contact", "sticking", 1, 4, 1, func(p *Params) *int { return &p.MultiContact }),
	floatField("tip_stickiness", "sticking", 0.1, 1.0, 0.1, func(p *Params) *float64 { return &p.TipStickiness }),
	floatField("side_stickiness", "sticking", 0.1, 1.0, 0.1, func(p *Params) *float64 { return &p.SideStickiness }),
	floatField("stickiness_gradient", "sticking", -0.5, 0.5, 0.1, func(p *Params) *float64 { return &p.StickinessGradient }),

	enumField("spawn_mode", "spawn", spawnNames, nil,
		func(p *Params) int { return int(p.SpawnMode) }, func(p *Params, v int) { p.SpawnMode = SpawnMode(v) }),
	enumField("boundary", "spawn", boundaryNames, nil,
		func(p *Params) int { return int(p.Boundary) }, func(p *Params, v int) { p.Boundary = Boundary(v) }),
	floatField("spawn_offset", "spawn", 5, 50, 5, func(p *Params) *float64 { return &p.SpawnOffset }),
	floatField("escape_mult", "spawn", 2, 6, 0.5, func(p *Params) *float64 { return &p.EscapeMult }),
	floatField("min_radius", "spawn", 20, 100, 5, func(p *Params) *float64 { return &p.MinRadius }),
	intField("max_iterations", "spawn", 1000, 50000, 1000, func(p *Params) *int { return &p.MaxIterations }),

	enumField("color_mode", "visual", colorModeNames, nil,
		func(p *Params) int { return int(p.ColorMode) }, func(p *Params, v int) { p.ColorMode = ColorMode(v) }),
	intField("highlight", "visual", 0, MaxHighlight, 5, func(p *Params) *int { return &p.Highlight }),
	boolField("invert", "visual", func(p *Params) *bool { return &p.Invert }),
	enumField("color_scheme", "visual", schemeNames, schemeAliases,
		func(p *Params) int { return int(p.ColorScheme) }, func(p *Params, v int) { p.ColorScheme = ColorScheme(v) }),
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fields))
	for i, f := range fields {
		m[f.Key] = i
	}
	return m
}()

func intField(key, group string, lo, hi, step int, ref func(*Params) *int) Field {
	return Field{Key: key, Group: group, Kind: KindInt, Min: float64(lo), Max: float64(hi), Step: float64(step), intRef: ref}
}

func floatField(key, group string, lo, hi, step float64, ref func(*Params) *float64) Field {
	return Field{Key: key, Group: group, Kind: KindFloat, Min: lo, Max: hi, Step: step, floatRef: ref}
}

func wrapField(key, group string, lo, hi, step float64, ref func(*Params) *float64) Field {
	f := floatField(key, group, lo, hi, step, ref)
	f.Wrap = true
	return f
}

func boolField(key, group string, ref func(*Params) *bool) Field {
	return Field{Key: key, Group: group, Kind: KindBool, Max: 1, Step: 1, boolRef: ref}
}

func enumField(key, group string, names []string, aliases map[string]string, get func(*Params) int, set func(*Params, int)) Field {
	return Field{
		Key: key, Group: group, Kind: KindEnum,
		Max: float64(len(names) - 1), Step: 1,
		enum: &enumAccess{names: names, aliases: aliases, get: get, set: set},
	}
}

// Fields returns the descriptors of every parameter in display order
func Fields() []Field {
	return append([]Field(nil), fields...)
}

// Keys returns every parameter name in display order
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// Lookup returns the descriptor for a parameter name, accepting hyphens and any case
func Lookup(name string) (Field, bool) {
	i, ok := fieldIndex[normalizeKey(name)]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// Set returns a copy of p with the named parameter parsed from raw
// p itself is never modified; on error the returned Params equals p
func (p Params) Set(name, raw string) (Params, error) {
	f, ok := Lookup(name)
	if !ok {
		return p, &InvalidParamError{Name: name, Value: raw, Reason: "unknown parameter"}
	}
	next := p
	if err := f.set(&next, raw); err != nil {
		return p, err
	}
	return next, nil
}

// Get formats the named parameter as it would be accepted by Set
func (p Params) Get(name string) (string, error) {
	f, ok := Lookup(name)
	if !ok {
		return "", &InvalidParamError{Name: name, Reason: "unknown parameter"}
	}
	return f.value(&p), nil
}

// Adjust steps the named parameter by dir increments, clamping to range
// Enums cycle, booleans toggle, cyclic ranges wrap
func (p Params) Adjust(name string, dir int) (Params, error) {
	f, ok := Lookup(name)
	if !ok {
		return p, &InvalidParamError{Name: name, Reason: "unknown parameter"}
	}
	next := p
	f.adjust(&next, dir)
	return next, nil
}

func (f *Field) value(p *Params) string {
	switch f.Kind {
	case KindInt:
		return strconv.Itoa(*f.intRef(p))
	case KindFloat:
		return strconv.FormatFloat(*f.floatRef(p), 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(*f.boolRef(p))
	default:
		return enumName(f.enum.names, f.enum.get(p))
	}
}

func (f *Field) set(p *Params, raw string) error {
	invalid := func(reason string) error {
		return &InvalidParamError{Name: f.Key, Value: raw, Reason: reason}
	}
	s := strings.TrimSpace(raw)

	switch f.Kind {
	case KindInt:
		v, err := strconv.Atoi(s)
		if err != nil {
			return invalid("not an integer")
		}
		if float64(v) < f.Min || float64(v) > f.Max {
			return invalid(f.rangeText())
		}
		*f.intRef(p) = v
	case KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("not a number")
		}
		if !f.inRange(v) {
			return invalid(f.rangeText())
		}
		*f.floatRef(p) = v
	case KindBool:
		v, err := parseBool(s)
		if err != nil {
			return invalid(err.Error())
		}
		*f.boolRef(p) = v
	case KindEnum:
		v, err := parseEnum(f.enum.names, f.enum.aliases, s)
		if err != nil {
			return invalid(err.Error())
		}
		f.enum.set(p, v)
	}
	return nil
}

func (f *Field) check(p *Params) error {
	var v float64
	switch f.Kind {
	case KindInt:
		v = float64(*f.intRef(p))
	case KindFloat:
		v = *f.floatRef(p)
		if math.IsNaN(v) {
			return &InvalidParamError{Name: f.Key, Value: f.value(p), Reason: "not a number"}
		}
	case KindBool:
		return nil
	case KindEnum:
		v = float64(f.enum.get(p))
	}
	if !f.inRange(v) {
		return &InvalidParamError{Name: f.Key, Value: f.value(p), Reason: f.rangeText()}
	}
	return nil
}

func (f *Field) adjust(p *Params, dir int) {
	switch f.Kind {
	case KindInt:
		ref := f.intRef(p)
		v := float64(*ref) + f.Step*float64(dir)
		*ref = int(clampRange(v, f.Min, f.Max))
	case KindFloat:
		ref := f.floatRef(p)
		v := *ref + f.Step*float64(dir)
		if f.Wrap {
			span := f.Max - f.Min
			v = f.Min + math.Mod(math.Mod(v-f.Min, span)+span, span)
		} else {
			v = clampRange(v, f.Min, f.Max)
		}
		// Suppress accumulated binary drift from repeated steps
		*ref = math.Round(v*1e6) / 1e6
	case KindBool:
		if dir != 0 {
			ref := f.boolRef(p)
			*ref = !*ref
		}
	case KindEnum:
		n := len(f.enum.names)
		f.enum.set(p, cycle(f.enum.get(p), n, dir%n))
	}
}

func (f *Field) inRange(v float64) bool {
	if v < f.Min {
		return false
	}
	if f.Wrap {
		return v < f.Max
	}
	return v <= f.Max
}

func (f *Field) rangeText() string {
	switch {
	case f.Kind == KindEnum:
		return fmt.Sprintf("must be one of %s", strings.Join(f.enum.names, ", "))
	case f.Wrap:
		return fmt.Sprintf("must be in [%g, %g)", f.Min, f.Max)
	default:
		return fmt.Sprintf("must be in [%g, %g]", f.Min, f.Max)
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "t", "true", "on", "yes", "y":
		return true, nil
	case "0", "f", "false", "off", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}

func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
