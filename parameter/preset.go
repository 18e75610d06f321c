package parameter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Preset is a named parameter set
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Params      Params `yaml:"params"`
	Builtin     bool   `yaml:"-"`
}

// presetExt is the file extension of user preset files
const presetExt = ".yaml"

// Builtins returns the shipped presets in display order
func Builtins() []Preset {
	with := func(mod func(p *Params)) Params {
		p := Default()
		mod(&p)
		return p
	}
	presets := []Preset{
		{Name: "Classic", Description: "Standard DLA with default settings", Params: Default()},
		{Name: "Dense", Description: "Compact structures with multiple contact requirement", Params: with(func(p *Params) {
			p.MultiContact = 2
			p.Neighborhood = Moore
		})},
		{Name: "Dendritic", Description: "Thin, branching dendrite patterns", Params: with(func(p *Params) {
			p.WalkStepSize = 3.0
			p.SideStickiness = 0.3
			p.BaseStickiness = 0.3
		})},
		{Name: "Snowflake", Description: "Symmetric snowflake-like growth", Params: with(func(p *Params) {
			p.WalkStepSize = 2.0
			p.SeedPattern = SeedCross
			p.BaseStickiness = 0.8
		})},
		{Name: "Coral", Description: "Thick, coral-like structures", Params: with(func(p *Params) {
			p.WalkStepSize = 1.5
			p.TipStickiness = 0.5
			p.Neighborhood = Moore
			p.SeedPattern = SeedRing
			p.BaseStickiness = 0.7
		})},
		{Name: "Wind-swept", Description: "Asymmetric growth with directional bias", Params: with(func(p *Params) {
			p.WalkAngle = 45
			p.WalkForce = 0.3
			p.BaseStickiness = 0.8
		})},
		{Name: "Fractal Forest", Description: "Multiple growth centers competing", Params: with(func(p *Params) {
			p.WalkStepSize = 2.5
			p.SeedPattern = SeedScatter
			p.BaseStickiness = 0.4
			p.ParticleCount = 8000
		})},
		{Name: "Edge Growth", Description: "Particles spawn from grid edges", Params: with(func(p *Params) {
			p.SpawnMode = SpawnEdges
			p.Boundary = BoundaryBounce
			p.BaseStickiness = 0.9
		})},
		{Name: "Angular", Description: "Sharp, angular growth patterns", Params: with(func(p *Params) {
			p.WalkStepSize = 1.5
			p.LatticeWalk = true
		})},
		{Name: "Blob", Description: "Dense, blob-like structures", Params: with(func(p *Params) {
			p.Neighborhood = Extended
			p.MultiContact = 3
			p.SeedPattern = SeedBlock
		})},
		{Name: "Gradient", Description: "Dense core with sparse edges", Params: with(func(p *Params) {
			p.StickinessGradient = -0.3
		})},
		{Name: "Rain", Description: "Particles fall from top edge", Params: with(func(p *Params) {
			p.SpawnMode = SpawnTop
			p.RadialBias = 0.1
			p.SeedPattern = SeedLine
			p.BaseStickiness = 0.8
		})},
	}
	for i := range presets {
		presets[i].Builtin = true
	}
	return presets
}

// PresetStore lists built-in presets and reads/writes user presets as YAML files in Dir
type PresetStore struct {
	Dir string
}

// DefaultPresetDir returns <user config dir>/dla-sim/presets
func DefaultPresetDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "dla-sim", "presets"), nil
}

// NewPresetStore returns a store rooted at dir, or at DefaultPresetDir when dir is empty
func NewPresetStore(dir string) (*PresetStore, error) {
	if dir == "" {
		d, err := DefaultPresetDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &PresetStore{Dir: dir}, nil
}

// List returns built-ins followed by user presets sorted by name
// Unreadable or invalid user files are skipped and reported in the joined error
func (s *PresetStore) List() ([]Preset, error) {
	out := Builtins()
	user, err := s.loadUser()
	return append(out, user...), err
}

// Find looks a preset up by case-insensitive name; built-ins win over user presets of the same name
func (s *PresetStore) Find(name string) (Preset, error) {
	all, _ := s.List()
	for _, p := range all {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found", name)
}

// Save writes p to <Dir>/<sanitized name>.yaml, creating Dir as needed
func (s *PresetStore) Save(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name is empty")
	}
	if err := p.Params.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0o644); err != nil {
		return fmt.Errorf("write preset %q: %w", p.Name, err)
	}
	return nil
}

// Delete removes a user preset file; a missing file is not an error
func (s *PresetStore) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	return nil
}

func (s *PresetStore) path(name string) string {
	return filepath.Join(s.Dir, SanitizeName(name)+presetExt)
}

func (s *PresetStore) loadUser() ([]Preset, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preset dir: %w", err)
	}

	var (
		out  []Preset
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != presetExt {
			continue
		}
		p, err := readPreset(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, errors.Join(errs...)
}

func readPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %s: %w", path, err)
	}
	// Missing keys keep their defaults
	p := Preset{Params: Default()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), presetExt)
	}
	if err := p.Params.Validate(); err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// SanitizeName maps a preset name to a file stem: letters, digits, '-' and '_' are kept, all else becomes '_'
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, name)
}
