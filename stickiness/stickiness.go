// Package stickiness decides adhesion of a walker to the aggregate
package stickiness

import (
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

// Grid is the lattice view needed for contact counting
type Grid interface {
	NeighborCount(x, y int, nh parameter.Neighborhood) int
	DistanceFromCenter(x, y int) float64
}

// GradientScale is the distance over which stickiness_gradient applies in full
const GradientScale = 100.0

// Probability returns the adhesion probability for a site with n occupied neighbors at distance dist from center
// tip/side are interpolated by n/max so sparse contacts use tip and crowded contacts use side stickiness
func Probability(n int, dist float64, p parameter.Params) float64 {
	maxN := p.Neighborhood.Max()
	ratio := float64(n) / float64(maxN)
	base := vmath.Lerp(p.TipStickiness, p.SideStickiness, ratio)
	adj := base + p.StickinessGradient*(dist/GradientScale)
	return vmath.Clamp(adj*p.BaseStickiness, 0, 1)
}

// ShouldStick evaluates contact at (x, y) and draws against the adhesion probability
// It returns the neighbor count alongside the decision; below multi_contact it never draws from rng
func ShouldStick(g Grid, x, y int, p parameter.Params, rng vmath.Source) (bool, int) {
	n := g.NeighborCount(x, y, p.Neighborhood)
	if n == 0 || n < p.MultiContact {
		return false, n
	}
	prob := Probability(n, g.DistanceFromCenter(x, y), p)
	return rng.Float64() < prob, n
}
