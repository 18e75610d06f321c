package stickiness

import (
	"math"
	"testing"

	"github.com/lixenwraith/dla-sim/lattice"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

// constSource returns a fixed float and panics on Intn
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }
func (c constSource) Intn(int) int     { panic("unexpected Intn") }

// countingSource records how often it was drawn from
type countingSource struct{ draws int }

func (c *countingSource) Float64() float64 { c.draws++; return 0 }
func (c *countingSource) Intn(int) int     { c.draws++; return 0 }

func TestProbability(t *testing.T) {
	p := parameter.Default()
	tests := []struct {
		name   string
		mutate func(p *parameter.Params)
		n      int
		dist   float64
		want   float64
	}{
		{"defaults are certain", nil, 1, 50, 1},
		{"tip only", func(p *parameter.Params) { p.TipStickiness, p.SideStickiness = 0.2, 1.0 }, 0, 0, 0.2},
		{"half way", func(p *parameter.Params) { p.TipStickiness, p.SideStickiness = 0.2, 1.0 }, 2, 0, 0.6},
		{"side only", func(p *parameter.Params) { p.TipStickiness, p.SideStickiness = 0.2, 1.0 }, 4, 0, 1.0},
		{"base scales", func(p *parameter.Params) { p.BaseStickiness = 0.5 }, 1, 0, 0.5},
		{"gradient", func(p *parameter.Params) {
			p.TipStickiness, p.SideStickiness, p.StickinessGradient = 0.5, 0.5, -0.2
		}, 1, 100, 0.3},
		{"clamped low", func(p *parameter.Params) {
			p.TipStickiness, p.SideStickiness, p.StickinessGradient = 0.1, 0.1, -0.5
		}, 1, 300, 0},
		{"clamped high", func(p *parameter.Params) { p.StickinessGradient = 0.5 }, 1, 300, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p
			if tt.mutate != nil {
				tt.mutate(&q)
			}
			if got := Probability(tt.n, tt.dist, q); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Probability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldStickDeterministicAtFullStickiness(t *testing.T) {
	l := lattice.New(20, 20)
	_ = l.Attach(10, 10, 0, 0, 0, 0)
	p := parameter.Default()

	// rng value just below 1 still sticks when p == 1
	stick, n := ShouldStick(l, 11, 10, p, constSource(0.999999))
	if !stick || n != 1 {
		t.Errorf("ShouldStick = %v,%d; want true,1", stick, n)
	}
}

func TestShouldStickMultiContact(t *testing.T) {
	l := lattice.New(20, 20)
	_ = l.Attach(10, 10, 0, 0, 0, 0)
	p := parameter.Default()
	p.MultiContact = 2

	src := &countingSource{}
	stick, n := ShouldStick(l, 11, 10, p, src)
	if stick || n != 1 {
		t.Errorf("single contact stuck with multi_contact=2: %v,%d", stick, n)
	}
	if src.draws != 0 {
		t.Errorf("rng drawn %d times below contact threshold", src.draws)
	}

	_ = l.Attach(12, 11, 1, 0, 0, 0)
	_ = l.Attach(11, 11, 2, 0, 0, 0)
	stick, n = ShouldStick(l, 11, 10, p, src)
	if !stick || n != 2 {
		t.Errorf("two contacts: %v,%d; want true,2", stick, n)
	}
}

func TestShouldStickNoContact(t *testing.T) {
	l := lattice.New(20, 20)
	_ = l.Attach(10, 10, 0, 0, 0, 0)
	if stick, n := ShouldStick(l, 15, 15, parameter.Default(), vmath.NewFastRand(1)); stick || n != 0 {
		t.Errorf("isolated site: %v,%d", stick, n)
	}
}

func TestShouldStickRespectsNeighborhood(t *testing.T) {
	l := lattice.New(20, 20)
	_ = l.Attach(10, 10, 0, 0, 0, 0)
	p := parameter.Default()

	if stick, _ := ShouldStick(l, 11, 11, p, constSource(0)); stick {
		t.Error("diagonal contact stuck under von Neumann")
	}
	p.Neighborhood = parameter.Moore
	if stick, _ := ShouldStick(l, 11, 11, p, constSource(0)); !stick {
		t.Error("diagonal contact did not stick under Moore")
	}
}
