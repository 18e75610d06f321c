// Package boundary resolves walk steps that leave the lattice
package boundary

import (
	"math"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

// Kind is the result class of a boundary check
type Kind uint8

const (
	InBounds    Kind = iota // keep walking at Outcome.Pos
	Removed                 // discard the particle and respawn
	StickAtEdge             // attach at Outcome.Pos
)

func (k Kind) String() string {
	switch k {
	case InBounds:
		return "in-bounds"
	case Removed:
		return "removed"
	case StickAtEdge:
		return "stick-at-edge"
	}
	return "unknown"
}

// Bounds is the continuous extent [0, W) × [0, H)
type Bounds struct {
	W, H float64
}

// NewBounds returns bounds for an integer lattice size
func NewBounds(w, h int) Bounds {
	return Bounds{W: float64(w), H: float64(h)}
}

// Contains reports whether pos is inside the bounds
func (b Bounds) Contains(pos vmath.Vec2) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < b.W && pos.Y < b.H
}

// Clamp saturates pos into the bounds
func (b Bounds) Clamp(pos vmath.Vec2) vmath.Vec2 {
	return vmath.Vec2{X: saturate(pos.X, b.W), Y: saturate(pos.Y, b.H)}
}

// Outcome is the resolved position, velocity and class of a step
// FlipX/FlipY report a bounce off that axis; the walker inverts that axis on its next step
type Outcome struct {
	Kind  Kind
	Pos   vmath.Vec2
	Vel   vmath.Vec2
	FlipX bool
	FlipY bool
}

// Apply resolves pos under policy; in-bounds positions pass through unchanged for every policy
func Apply(policy parameter.Boundary, pos, vel vmath.Vec2, b Bounds) Outcome {
	if b.Contains(pos) {
		return Outcome{Kind: InBounds, Pos: pos, Vel: vel}
	}

	switch policy {
	case parameter.BoundaryClamp:
		return Outcome{Kind: InBounds, Pos: b.Clamp(pos), Vel: vel}

	case parameter.BoundaryWrap:
		return Outcome{Kind: InBounds, Pos: vmath.Vec2{X: wrap(pos.X, b.W), Y: wrap(pos.Y, b.H)}, Vel: vel}

	case parameter.BoundaryBounce:
		x, flipX := reflect(pos.X, b.W)
		y, flipY := reflect(pos.Y, b.H)
		if flipX {
			vel = vmath.ReflectAxisX(vel)
		}
		if flipY {
			vel = vmath.ReflectAxisY(vel)
		}
		// A step longer than the extent can still land outside after one reflection
		return Outcome{Kind: InBounds, Pos: b.Clamp(vmath.Vec2{X: x, Y: y}), Vel: vel, FlipX: flipX, FlipY: flipY}

	case parameter.BoundaryStick:
		return Outcome{Kind: StickAtEdge, Pos: b.Clamp(pos), Vel: vmath.Vec2{}}

	default:
		return Outcome{Kind: Removed, Pos: pos, Vel: vel}
	}
}

// saturate limits v to [0, extent)
func saturate(v, extent float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= extent {
		return math.Nextafter(extent, 0)
	}
	return v
}

// wrap maps v into [0, extent) toroidally
func wrap(v, extent float64) float64 {
	r := math.Mod(v, extent)
	if r < 0 {
		r += extent
	}
	if r >= extent {
		r = 0
	}
	return r
}

// reflect mirrors v off the wall it crossed, reporting whether a reflection happened
func reflect(v, extent float64) (float64, bool) {
	switch {
	case v < 0:
		return -v, true
	case v >= extent:
		return 2*extent - v, true
	}
	return v, false
}
