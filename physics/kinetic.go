package physics

import "github.com/lixenwraith/dla-sim/vmath"

// Kinetic is the continuous state of a walker: position and last displacement
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2

	// Pending axis inversions from the last bounce, consumed by the next Integrate
	FlipX bool
	FlipY bool
}

// Integrate applies displacement d: v = d; p = p + v
// Pending flips invert d per axis and are cleared
// Returns the proposed position without committing it, so boundary policy can intercept
func (k *Kinetic) Integrate(d vmath.Vec2) vmath.Vec2 {
	if k.FlipX {
		d.X = -d.X
	}
	if k.FlipY {
		d.Y = -d.Y
	}
	k.FlipX, k.FlipY = false, false
	k.Vel = d
	return k.Pos.Add(d)
}

// Bounce records axis inversions for the next step
func (k *Kinetic) Bounce(flipX, flipY bool) {
	k.FlipX, k.FlipY = flipX, flipY
}

// Commit stores a resolved position and velocity
func (k *Kinetic) Commit(pos, vel vmath.Vec2) {
	k.Pos = pos
	k.Vel = vel
}

// Cell returns the lattice site under the walker
func (k *Kinetic) Cell() (int, int) {
	return k.Pos.Cell()
}
