// Package spawn plans entry positions for new walkers
package spawn

import (
	"fmt"
	"math"

	"github.com/lixenwraith/dla-sim/boundary"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

const (
	// MaxSpawnAttempts bounds resampling of occupied or rejected candidates
	MaxSpawnAttempts = 1000
	// CornerRegion is the inward jitter, in dots, around a spawn box corner
	CornerRegion = 4.0
)

// Grid is the lattice view needed for spawn planning
type Grid interface {
	Width() int
	Height() int
	Center() (float64, float64)
	CurrentRadius() float64
	IsOccupied(x, y int) bool
}

// SpawnExhaustedError is returned when no free candidate was found
type SpawnExhaustedError struct {
	Attempts int
	Mode     parameter.SpawnMode
}

func (e *SpawnExhaustedError) Error() string {
	return fmt.Sprintf("spawn: no free %s position after %d attempts", e.Mode, e.Attempts)
}

// Radius returns the spawn radius: current aggregate radius plus offset, never below min_radius
func Radius(g Grid, p parameter.Params) float64 {
	return max(g.CurrentRadius()+p.SpawnOffset, p.MinRadius)
}

// Next returns a free spawn position for the configured mode
func Next(g Grid, p parameter.Params, rng vmath.Source) (vmath.Vec2, error) {
	b := boundary.NewBounds(g.Width(), g.Height())
	cx, cy := g.Center()
	center := vmath.V(cx, cy)
	r := Radius(g, p)

	for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
		pos, normal, ok := candidate(p.SpawnMode, center, r, g, rng)
		if !ok {
			continue
		}
		pos = b.Clamp(pos)
		if !g.IsOccupied(pos.Cell()) {
			return pos, nil
		}
		if free, ok := inward(g, b, pos, normal, center); ok {
			return free, nil
		}
	}
	return vmath.Vec2{}, &SpawnExhaustedError{Attempts: MaxSpawnAttempts, Mode: p.SpawnMode}
}

// inward steps from an occupied edge candidate along the inward normal to the first free site
// The search stops at the center line; a zero normal never searches
func inward(g Grid, b boundary.Bounds, pos, normal, center vmath.Vec2) (vmath.Vec2, bool) {
	if normal == (vmath.Vec2{}) {
		return pos, false
	}
	to := center.Sub(pos)
	limit := math.Abs(to.X*normal.X + to.Y*normal.Y)
	for d := 1.0; d <= limit; d++ {
		next := pos.Add(normal.Scale(d))
		if !b.Contains(next) {
			break
		}
		if !g.IsOccupied(next.Cell()) {
			return next, true
		}
	}
	return pos, false
}

// candidate draws one unclipped position and, for edge modes, the inward normal of its edge
// ok is false for a rejected draw
func candidate(mode parameter.SpawnMode, c vmath.Vec2, r float64, g Grid, rng vmath.Source) (vmath.Vec2, vmath.Vec2, bool) {
	along := func() float64 { return vmath.Range(rng, -r, r) }

	switch mode {
	case parameter.SpawnEdges:
		edge := rng.Intn(4)
		return boxEdge(edge, c, r, along()), edgeNormals[edge], true
	case parameter.SpawnTop:
		return boxEdge(0, c, r, along()), edgeNormals[0], true
	case parameter.SpawnBottom:
		return boxEdge(1, c, r, along()), edgeNormals[1], true
	case parameter.SpawnLeft:
		return boxEdge(2, c, r, along()), edgeNormals[2], true
	case parameter.SpawnRight:
		return boxEdge(3, c, r, along()), edgeNormals[3], true

	case parameter.SpawnCorners:
		sx, sy := 1.0, 1.0
		switch rng.Intn(4) {
		case 0:
			sx, sy = -1, -1
		case 1:
			sy = -1
		case 2:
			sx = -1
		}
		// Jitter inward toward the center
		jx := vmath.Range(rng, 0, CornerRegion)
		jy := vmath.Range(rng, 0, CornerRegion)
		return vmath.V(c.X+sx*(r-jx), c.Y+sy*(r-jy)), vmath.Vec2{}, true

	case parameter.SpawnRandom:
		pos := vmath.V(vmath.Range(rng, 0, float64(g.Width())), vmath.Range(rng, 0, float64(g.Height())))
		return pos, vmath.Vec2{}, pos.Dist(c) > g.CurrentRadius()

	default:
		return c.Add(vmath.FromAngle(vmath.Angle(rng), r)), vmath.Vec2{}, true
	}
}

// edgeNormals point from each box edge toward the center, indexed like boxEdge
var edgeNormals = [4]vmath.Vec2{{Y: 1}, {Y: -1}, {X: 1}, {X: -1}}

// boxEdge returns a point on edge (0 top, 1 bottom, 2 left, 3 right) of the square of half-size r around c
func boxEdge(edge int, c vmath.Vec2, r, t float64) vmath.Vec2 {
	switch edge {
	case 0:
		return vmath.V(c.X+t, c.Y-r)
	case 1:
		return vmath.V(c.X+t, c.Y+r)
	case 2:
		return vmath.V(c.X-r, c.Y+t)
	default:
		return vmath.V(c.X+r, c.Y+t)
	}
}
