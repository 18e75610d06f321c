package physics

import (
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

// adaptiveMargin keeps adaptive steps from reaching into the aggregate envelope
const adaptiveMargin = 1.0

// cardinals are the unit steps of a lattice walk
var cardinals = [4]vmath.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// StepLength returns the isotropic step magnitude for a walker at pos
// With adaptive_step the step grows toward the gap beyond the aggregate radius,
// bounded by adaptive_factor multiples and never more than half the gap
func StepLength(pos, center vmath.Vec2, radius float64, p parameter.Params) float64 {
	step := p.WalkStepSize
	if !p.AdaptiveStep {
		return step
	}
	gap := pos.Dist(center) - radius - adaptiveMargin
	if gap <= 2*step {
		return step
	}
	return max(step, min(gap/2, step*p.AdaptiveFactor))
}

// Displacement returns one walk step: isotropic move plus directional and radial bias
// Bias magnitudes scale with walk_step_size; positive radial_bias pulls toward center
func Displacement(pos, center vmath.Vec2, radius float64, p parameter.Params, rng vmath.Source) vmath.Vec2 {
	step := StepLength(pos, center, radius, p)

	var d vmath.Vec2
	if p.LatticeWalk {
		d = cardinals[rng.Intn(len(cardinals))].Scale(step)
	} else {
		d = vmath.FromAngle(vmath.Angle(rng), step)
	}

	if p.WalkForce != 0 {
		d = d.Add(vmath.FromAngle(vmath.Radians(p.WalkAngle), p.WalkForce*p.WalkStepSize))
	}
	if p.RadialBias != 0 {
		inward := center.Sub(pos).Normalize()
		d = d.Add(inward.Scale(p.RadialBias * p.WalkStepSize))
	}
	return d
}
