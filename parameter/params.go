package parameter

// Growth
const (
	DefaultParticleCount  = 5000
	MinParticleCount      = 100
	MaxParticleCount      = 10000
	DefaultBaseStickiness = 1.0
	DefaultStepsPerFrame  = 5
	MinStepsPerFrame      = 1
	MaxStepsPerFrame      = 50
)

// Movement
const (
	DefaultWalkStepSize   = 1.0
	DefaultAdaptiveFactor = 3.0
)

// Spawn and boundary
const (
	DefaultSpawnOffset   = 10.0
	DefaultEscapeMult    = 3.0
	DefaultMinRadius     = 20.0
	DefaultMaxIterations = 10000
)

// Visual
const (
	// MaxHighlight caps the number of recent attachments drawn in the highlight color
	MaxHighlight = 50
)

// ParticleAreaRatio caps particle_count at this fraction of lattice dot area
const ParticleAreaRatio = 0.75

// Params is an immutable value snapshot of every tunable, passed by value into each subsystem call
type Params struct {
	// Growth
	ParticleCount  int         `yaml:"particle_count"`
	BaseStickiness float64     `yaml:"base_stickiness"`
	SeedPattern    SeedPattern `yaml:"seed_pattern"`
	StepsPerFrame  int         `yaml:"steps_per_frame"`

	// Movement
	WalkStepSize   float64 `yaml:"walk_step_size"`
	WalkAngle      float64 `yaml:"walk_angle"` // degrees, [0, 360)
	WalkForce      float64 `yaml:"walk_force"`
	RadialBias     float64 `yaml:"radial_bias"` // positive pulls inward
	LatticeWalk    bool    `yaml:"lattice_walk"`
	AdaptiveStep   bool    `yaml:"adaptive_step"`
	AdaptiveFactor float64 `yaml:"adaptive_factor"`

	// Sticking
	Neighborhood       Neighborhood `yaml:"neighborhood"`
	MultiContact       int          `yaml:"multi_contact"`
	TipStickiness      float64      `yaml:"tip_stickiness"`
	SideStickiness     float64      `yaml:"side_stickiness"`
	StickinessGradient float64      `yaml:"stickiness_gradient"`

	// Spawn and boundary
	SpawnMode     SpawnMode `yaml:"spawn_mode"`
	Boundary      Boundary  `yaml:"boundary"`
	SpawnOffset   float64   `yaml:"spawn_offset"`
	EscapeMult    float64   `yaml:"escape_mult"`
	MinRadius     float64   `yaml:"min_radius"`
	MaxIterations int       `yaml:"max_iterations"`

	// Visual
	ColorMode   ColorMode   `yaml:"color_mode"`
	Highlight   int         `yaml:"highlight"`
	Invert      bool        `yaml:"invert"`
	ColorScheme ColorScheme `yaml:"color_scheme"`
}

// Default returns the canonical DLA configuration: isotropic walk, 4-neighbor contact, absorbing edges
func Default() Params {
	return Params{
		ParticleCount:  DefaultParticleCount,
		BaseStickiness: DefaultBaseStickiness,
		SeedPattern:    SeedPoint,
		StepsPerFrame:  DefaultStepsPerFrame,

		WalkStepSize:   DefaultWalkStepSize,
		AdaptiveFactor: DefaultAdaptiveFactor,

		Neighborhood:   VonNeumann,
		MultiContact:   1,
		TipStickiness:  1.0,
		SideStickiness: 1.0,

		SpawnMode:     SpawnCircle,
		Boundary:      BoundaryAbsorb,
		SpawnOffset:   DefaultSpawnOffset,
		EscapeMult:    DefaultEscapeMult,
		MinRadius:     DefaultMinRadius,
		MaxIterations: DefaultMaxIterations,

		ColorMode:   ColorAge,
		ColorScheme: SchemeIce,
	}
}

// Validate reports the first field outside its range as *InvalidParamError
func (p Params) Validate() error {
	for i := range fields {
		if err := fields[i].check(&p); err != nil {
			return err
		}
	}
	return nil
}

// MaxParticles returns the particle cap for a lattice of the given dot area
func MaxParticles(area int) int {
	n := int(float64(area) * ParticleAreaRatio)
	if n < MinParticleCount {
		return MinParticleCount
	}
	return n
}
