package lattice

import (
	"math"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

// Seed geometry
const (
	lineHalfLen     = 20
	crossArmLen     = 10
	circleRadius    = 15
	ringThickness   = 2.5
	scatterRadius   = 20
	scatterPoints   = 15
	multiPointReach = 25
	spokeCount      = 8
	rimStepDeg      = 4
)

// Seed attaches the initial structure for pattern at order 0
// It returns the number of sites attached; a pattern that places nothing falls back to the center point
func (l *Lattice) Seed(pattern parameter.SeedPattern, rng vmath.Source) int {
	before := l.count
	switch pattern {
	case parameter.SeedLine:
		l.seedLine()
	case parameter.SeedCross:
		l.seedCross()
	case parameter.SeedCircle:
		l.seedCircle()
	case parameter.SeedRing:
		l.seedRing()
	case parameter.SeedBlock:
		l.seedBlock()
	case parameter.SeedNoise:
		l.seedNoise(rng)
	case parameter.SeedScatter:
		l.seedScatter(rng)
	case parameter.SeedMultiPoint:
		l.seedMultiPoint()
	case parameter.SeedStarburst:
		l.seedStarburst()
	default:
		l.seedPoint()
	}
	if l.count == before {
		l.seedPoint()
	}
	return l.count - before
}

// seedAt attaches a seed, silently skipping occupied or out-of-bounds sites
func (l *Lattice) seedAt(x, y int) {
	if !l.InBounds(x, y) || l.IsOccupied(x, y) {
		return
	}
	_ = l.Attach(x, y, 0, l.DistanceFromCenter(x, y), 0, 0)
}

func (l *Lattice) minDim() int { return min(l.width, l.height) }

func (l *Lattice) seedPoint() {
	l.seedAt(l.width/2, l.height/2)
}

func (l *Lattice) seedLine() {
	cy := l.height / 2
	half := min(lineHalfLen, l.width/4)
	for x := l.width/2 - half; x < l.width/2+half; x++ {
		l.seedAt(x, cy)
	}
}

func (l *Lattice) seedCross() {
	cx, cy := l.width/2, l.height/2
	arm := min(crossArmLen, l.width/8, l.height/8)
	for i := 0; i < arm; i++ {
		l.seedAt(cx-i, cy)
		l.seedAt(cx+i, cy)
		l.seedAt(cx, cy-i)
		l.seedAt(cx, cy+i)
	}
}

func (l *Lattice) seedCircle() {
	cx, cy := l.Center()
	r := float64(min(circleRadius, l.width/8, l.height/8))
	for deg := 0; deg < 360; deg++ {
		a := vmath.Radians(float64(deg))
		l.seedAt(vmath.V(cx+r*math.Cos(a), cy+r*math.Sin(a)).Cell())
	}
}

func (l *Lattice) seedRing() {
	cx, cy := l.Center()
	m := float64(l.minDim())
	r := vmath.Clamp(m*0.30, 6, m*0.45)
	lo, hi := r-ringThickness, r+ringThickness
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d >= lo && d <= hi {
				l.seedAt(x, y)
			}
		}
	}
}

func (l *Lattice) seedBlock() {
	cx, cy := l.width/2, l.height/2
	half := max(l.minDim()/8, 4)
	for y := max(cy-half, 0); y <= min(cy+half, l.height-1); y++ {
		for x := max(cx-half, 0); x <= min(cx+half, l.width-1); x++ {
			l.seedAt(x, y)
		}
	}
}

// seedNoise places a falloff blob off-center: dense core, ragged rim
func (l *Lattice) seedNoise(rng vmath.Source) {
	m := float64(l.minDim())
	radius := vmath.Clamp(m*0.22, 6, 30)
	ri := int(radius)
	jitter := max(ri/3, 1)

	px := l.width/3 + rng.Intn(2*jitter+1) - jitter
	py := l.height/3 + rng.Intn(2*jitter+1) - jitter
	px = clampInt(px, 1, l.width-2)
	py = clampInt(py, 1, l.height-2)

	placed := false
	for y := max(py-ri, 1); y <= min(py+ri, l.height-2); y++ {
		for x := max(px-ri, 1); x <= min(px+ri, l.width-2); x++ {
			d := math.Hypot(float64(x-px), float64(y-py))
			if d > radius {
				continue
			}
			p := 0.35 + 0.65*(1-d/radius)
			if rng.Float64() < p {
				l.seedAt(x, y)
				placed = true
			}
		}
	}
	if !placed {
		l.seedAt(px, py)
	}
}

func (l *Lattice) seedScatter(rng vmath.Source) {
	cx, cy := l.Center()
	reach := float64(min(scatterRadius, l.width/6, l.height/6))
	for i := 0; i < scatterPoints; i++ {
		a := vmath.Angle(rng)
		r := vmath.Range(rng, 0, reach)
		l.seedAt(vmath.V(cx+r*math.Cos(a), cy+r*math.Sin(a)).Cell())
	}
}

func (l *Lattice) seedMultiPoint() {
	cx, cy := l.width/2, l.height/2
	s := min(multiPointReach, l.width/5, l.height/5)
	l.seedAt(cx, cy)
	l.seedAt(cx-s, cy)
	l.seedAt(cx+s, cy)
	l.seedAt(cx, cy-s)
	l.seedAt(cx, cy+s)
}

// seedStarburst draws a hub, evenly spaced spokes and a thin connecting rim
func (l *Lattice) seedStarburst() {
	cx, cy := l.Center()
	spoke := vmath.Clamp(float64(l.minDim())*0.35, 8, 40)
	interior := func(x, y int) bool {
		return x > 0 && y > 0 && x < l.width-1 && y < l.height-1
	}

	l.seedAt(int(cx), int(cy))
	for s := 0; s < spokeCount; s++ {
		a := float64(s) * vmath.Tau / spokeCount
		for step := 1; step <= int(spoke); step++ {
			x := int(math.Round(cx + float64(step)*math.Cos(a)))
			y := int(math.Round(cy + float64(step)*math.Sin(a)))
			if interior(x, y) {
				l.seedAt(x, y)
			}
		}
	}
	for deg := 0; deg < 360; deg += rimStepDeg {
		a := vmath.Radians(float64(deg))
		x, y := vmath.V(cx+spoke*math.Cos(a), cy+spoke*math.Sin(a)).Cell()
		if interior(x, y) {
			l.seedAt(x, y)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
