// Package scheduler drives the single in-flight walker through spawn, walk and adhesion
package scheduler

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/boundary"
	"github.com/lixenwraith/dla-sim/lattice"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/physics"
	"github.com/lixenwraith/dla-sim/spawn"
	"github.com/lixenwraith/dla-sim/stickiness"
	"github.com/lixenwraith/dla-sim/vmath"
)

// State is the lifecycle state of the in-flight particle
type State uint8

const (
	Idle State = iota
	Spawned
	Walking
	Stuck
	Escaped
	Removed
	Complete
	Exhausted
)

var stateNames = [...]string{"idle", "spawned", "walking", "stuck", "escaped", "removed", "complete", "exhausted"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Particle is the transient walker; it never outlives one lifecycle
type Particle struct {
	physics.Kinetic
	Steps int
}

// Attachment describes one particle joining the aggregate
type Attachment struct {
	X, Y      int
	Order     int
	Neighbors int
	Distance  float64
	AtEdge    bool
}

// Report summarizes one Advance call
type Report struct {
	Steps   int
	Stuck   int
	Escaped int
	Removed int
	State   State
	// Last is the most recent attachment in this call, nil when nothing stuck
	Last *Attachment
}

// Scheduler owns the in-flight particle; the lattice is passed in per call
type Scheduler struct {
	rng    vmath.Source
	logger *zap.Logger
	strict bool

	state    State
	particle Particle
	escapeR  float64
}

// New creates an idle scheduler
// In strict mode an attach onto an occupied site panics instead of being logged
func New(rng vmath.Source, logger *zap.Logger, strict bool) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{rng: rng, logger: logger, strict: strict}
}

// State returns the current lifecycle state
func (s *Scheduler) State() State { return s.state }

// Particle returns the in-flight walker, false when none is active
func (s *Scheduler) Particle() (Particle, bool) {
	if s.state != Spawned && s.state != Walking {
		return Particle{}, false
	}
	return s.particle, true
}

// Reset drops any in-flight particle
func (s *Scheduler) Reset() {
	s.state = Idle
	s.particle = Particle{}
	s.escapeR = 0
}

// Advance executes up to n walk steps across as many particle lifecycles as needed
// It stops early on completion; spawn failure returns *spawn.SpawnExhaustedError and leaves the scheduler Exhausted
func (s *Scheduler) Advance(lat *lattice.Lattice, p parameter.Params, n int) (Report, error) {
	var rep Report
	bounds := boundary.NewBounds(lat.Width(), lat.Height())
	cx, cy := lat.Center()
	center := vmath.V(cx, cy)

	for rep.Steps < n {
		if lat.Count() >= p.ParticleCount {
			if s.state != Complete {
				s.logger.Info("aggregate complete",
					zap.Int("stuck", lat.Count()),
					zap.Int("max_order", lat.MaxOrder()))
			}
			s.state = Complete
			break
		}

		if s.state != Spawned && s.state != Walking {
			if err := s.spawn(lat, p); err != nil {
				rep.State = s.state
				return rep, err
			}
		}

		s.step(lat, p, bounds, center, &rep)
	}

	if s.state != Complete && lat.Count() >= p.ParticleCount {
		s.state = Complete
	}
	rep.State = s.state
	return rep, nil
}

func (s *Scheduler) spawn(lat *lattice.Lattice, p parameter.Params) error {
	pos, err := spawn.Next(lat, p, s.rng)
	if err != nil {
		var ex *spawn.SpawnExhaustedError
		if errors.As(err, &ex) && s.state != Exhausted {
			s.logger.Warn("spawn exhausted",
				zap.Stringer("mode", p.SpawnMode),
				zap.Int("attempts", ex.Attempts),
				zap.Int("stuck", lat.Count()))
		}
		s.state = Exhausted
		return fmt.Errorf("advance: %w", err)
	}
	s.particle = Particle{Kinetic: physics.Kinetic{Pos: pos}}
	s.escapeR = spawn.Radius(lat, p) * p.EscapeMult
	s.state = Spawned
	return nil
}

// step performs one counted walk step of the in-flight particle
func (s *Scheduler) step(lat *lattice.Lattice, p parameter.Params, b boundary.Bounds, center vmath.Vec2, rep *Report) {
	pt := &s.particle
	s.state = Walking

	proposed := pt.Integrate(physics.Displacement(pt.Pos, center, lat.CurrentRadius(), p, s.rng))
	taken := pt.Vel
	out := boundary.Apply(p.Boundary, proposed, taken, b)
	pt.Steps++
	rep.Steps++

	switch out.Kind {
	case boundary.Removed:
		s.state = Removed
		rep.Removed++
		return
	case boundary.StickAtEdge:
		pt.Commit(out.Pos, taken)
		x, y := pt.Cell()
		if lat.IsOccupied(x, y) {
			s.state = Removed
			rep.Removed++
			return
		}
		s.attach(lat, x, y, lat.NeighborCount(x, y, p.Neighborhood), taken, true, rep)
		return
	default:
		pt.Commit(out.Pos, out.Vel)
		pt.Bounce(out.FlipX, out.FlipY)
	}

	x, y := pt.Cell()
	if !lat.IsOccupied(x, y) {
		if stick, nb := stickiness.ShouldStick(lat, x, y, p, s.rng); stick {
			s.attach(lat, x, y, nb, pt.Vel, false, rep)
			return
		}
	}

	if pt.Steps > p.MaxIterations || pt.Pos.Sub(center).LenSq() > s.escapeR*s.escapeR {
		s.state = Escaped
		rep.Escaped++
	}
}

func (s *Scheduler) attach(lat *lattice.Lattice, x, y, neighbors int, d vmath.Vec2, atEdge bool, rep *Report) {
	order := lat.MaxOrder() + 1
	dist := lat.DistanceFromCenter(x, y)
	dir := d.Angle()

	if err := lat.Attach(x, y, order, dist, neighbors, dir); err != nil {
		if s.strict {
			panic(err)
		}
		s.logger.Warn("attach rejected", zap.Error(err))
		s.state = Walking
		return
	}

	s.state = Stuck
	rep.Stuck++
	rep.Last = &Attachment{X: x, Y: y, Order: order, Neighbors: neighbors, Distance: dist, AtEdge: atEdge}
}
