// Package simulation is the host-facing API: it owns the lattice, the scheduler and the active parameter snapshot
package simulation

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/lattice"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/render"
	"github.com/lixenwraith/dla-sim/scheduler"
	"github.com/lixenwraith/dla-sim/spawn"
	"github.com/lixenwraith/dla-sim/vmath"
)

// Config configures a new Simulation
type Config struct {
	Params parameter.Params
	// Terminal cells; the lattice is Cols*2 × Rows*4 dots
	Cols, Rows int
	// Seed for the random stream, 0 picks a time-based seed
	Seed uint64
	// Source overrides Seed when set
	Source vmath.Source
	Logger *zap.Logger
	// Strict panics on lattice invariant violations instead of logging them
	Strict bool
}

// Stats is a point-in-time summary for status display
type Stats struct {
	Stuck     int // occupied sites, seeds included
	Seeds     int
	Target    int
	MaxOrder  int
	Radius    float64
	Progress  float64 // Stuck / Target, capped at 1
	State     scheduler.State
	Steps     int64
	Escaped   int64
	Removed   int64
	Exhausted bool
}

// Simulation is single-threaded; callers serialize Advance, Render and mutations
type Simulation struct {
	params parameter.Params
	lat    *lattice.Lattice
	sched  *scheduler.Scheduler
	rng    vmath.Source
	logger *zap.Logger

	exhausted bool
	steps     int64
	escaped   int64
	removed   int64
}

// New validates cfg, allocates the lattice and attaches the seed pattern
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		return nil, fmt.Errorf("simulation: invalid size %dx%d", cfg.Cols, cfg.Rows)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := cfg.Source
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = vmath.NewFastRand(seed)
		logger.Debug("rng seeded", zap.Uint64("seed", seed))
	}

	s := &Simulation{
		lat:    lattice.ForTerminal(cfg.Cols, cfg.Rows),
		rng:    rng,
		logger: logger,
	}
	s.sched = scheduler.New(rng, logger.Named("scheduler"), cfg.Strict)
	s.params = s.capParticles(cfg.Params)
	s.reseed()
	return s, nil
}

// capParticles limits particle_count to the lattice capacity
func (s *Simulation) capParticles(p parameter.Params) parameter.Params {
	if limit := s.MaxParticles(); p.ParticleCount > limit {
		s.logger.Info("particle count capped to lattice capacity",
			zap.Int("requested", p.ParticleCount),
			zap.Int("limit", limit))
		p.ParticleCount = limit
	}
	return p
}

func (s *Simulation) reseed() {
	s.lat.Clear()
	s.sched.Reset()
	seeds := s.lat.Seed(s.params.SeedPattern, s.rng)
	s.exhausted = false
	s.steps, s.escaped, s.removed = 0, 0, 0
	s.logger.Debug("reset",
		zap.Stringer("seed_pattern", s.params.SeedPattern),
		zap.Int("seeds", seeds),
		zap.Int("width", s.lat.Width()),
		zap.Int("height", s.lat.Height()))
}

// Advance runs up to steps walk steps, steps_per_frame when steps <= 0
// Spawn exhaustion returns *spawn.SpawnExhaustedError and marks the run exhausted; the host should pause
func (s *Simulation) Advance(steps int) (scheduler.Report, error) {
	if steps <= 0 {
		steps = s.params.StepsPerFrame
	}
	rep, err := s.sched.Advance(s.lat, s.params, steps)
	s.steps += int64(rep.Steps)
	s.escaped += int64(rep.Escaped)
	s.removed += int64(rep.Removed)
	if err != nil {
		var ex *spawn.SpawnExhaustedError
		if errors.As(err, &ex) {
			s.exhausted = true
		}
		return rep, err
	}
	s.exhausted = false
	return rep, nil
}

// Render returns the current braille frame; it never mutates state
func (s *Simulation) Render() render.Frame {
	return render.Render(s.lat, s.params)
}

// Reset installs params and regrows from a fresh seed
func (s *Simulation) Reset(p parameter.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = s.capParticles(p)
	s.reseed()
	return nil
}

// SetParam parses and applies one parameter; on error the active snapshot is unchanged
// seed_pattern takes effect at the next Reset, all others at the next step
func (s *Simulation) SetParam(name, value string) error {
	next, err := s.params.Set(name, value)
	if err != nil {
		return err
	}
	if limit := s.MaxParticles(); next.ParticleCount > limit {
		return &parameter.InvalidParamError{
			Name:   "particle_count",
			Value:  value,
			Reason: fmt.Sprintf("exceeds lattice capacity %d", limit),
		}
	}
	s.apply(next)
	return nil
}

// AdjustParam steps one parameter by dir increments within its range
func (s *Simulation) AdjustParam(name string, dir int) error {
	next, err := s.params.Adjust(name, dir)
	if err != nil {
		return err
	}
	s.apply(s.capParticles(next))
	return nil
}

func (s *Simulation) apply(next parameter.Params) {
	s.params = next
	// A new spawn mode or radius may free up positions
	s.exhausted = false
}

// IsComplete reports whether the aggregate reached particle_count
func (s *Simulation) IsComplete() bool {
	return s.lat.Count() >= s.params.ParticleCount
}

// Exhausted reports whether the last Advance failed to spawn
func (s *Simulation) Exhausted() bool { return s.exhausted }

// Params returns the active snapshot
func (s *Simulation) Params() parameter.Params { return s.params }

// Lattice exposes the aggregate for read-only inspection
func (s *Simulation) Lattice() *lattice.Lattice { return s.lat }

// MaxParticles returns the particle cap for the current lattice
func (s *Simulation) MaxParticles() int {
	return parameter.MaxParticles(s.lat.Area())
}

// Stats summarizes the run
func (s *Simulation) Stats() Stats {
	st := Stats{
		Stuck:     s.lat.Count(),
		Seeds:     s.lat.SeedCount(),
		Target:    s.params.ParticleCount,
		MaxOrder:  s.lat.MaxOrder(),
		Radius:    s.lat.CurrentRadius(),
		State:     s.sched.State(),
		Steps:     s.steps,
		Escaped:   s.escaped,
		Removed:   s.removed,
		Exhausted: s.exhausted,
	}
	if st.Target > 0 {
		st.Progress = min(float64(st.Stuck)/float64(st.Target), 1)
	}
	return st
}

// Resize reallocates the lattice for cols×rows terminal cells and restarts growth
// Unchanged dimensions are a no-op
func (s *Simulation) Resize(cols, rows int) {
	if cols <= 0 || rows <= 0 || (cols == s.lat.Cols() && rows == s.lat.Rows()) {
		return
	}
	s.lat = lattice.ForTerminal(cols, rows)
	s.params = s.capParticles(s.params)
	s.reseed()
}
