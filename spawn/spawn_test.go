package spawn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dla-sim/lattice"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/vmath"
)

func allModes() []parameter.SpawnMode {
	var out []parameter.SpawnMode
	m := parameter.SpawnCircle
	for {
		out = append(out, m)
		m = m.Next()
		if m == parameter.SpawnCircle {
			return out
		}
	}
}

func TestRadius(t *testing.T) {
	l := lattice.New(200, 200)
	p := parameter.Default()
	_ = l.Attach(100, 100, 0, 0, 0, 0)
	assert.Equal(t, p.MinRadius, Radius(l, p), "small aggregate uses min radius")

	_ = l.Attach(140, 100, 1, 40, 1, 0)
	assert.InDelta(t, 40+p.SpawnOffset, Radius(l, p), 1e-9)
}

func TestNextFreeAndInBounds(t *testing.T) {
	for _, mode := range allModes() {
		t.Run(mode.String(), func(t *testing.T) {
			l := lattice.New(120, 80)
			l.Seed(parameter.SeedPoint, nil)
			p := parameter.Default()
			p.SpawnMode = mode
			rng := vmath.NewFastRand(5)

			for i := 0; i < 500; i++ {
				pos, err := Next(l, p, rng)
				require.NoError(t, err)
				x, y := pos.Cell()
				require.True(t, l.InBounds(x, y), "pos %v outside lattice", pos)
				require.False(t, l.IsOccupied(x, y), "pos %v occupied", pos)
			}
		})
	}
}

func TestCircleDistance(t *testing.T) {
	l := lattice.New(400, 400)
	l.Seed(parameter.SeedPoint, nil)
	p := parameter.Default()
	rng := vmath.NewFastRand(9)
	cx, cy := l.Center()
	for i := 0; i < 200; i++ {
		pos, err := Next(l, p, rng)
		require.NoError(t, err)
		assert.InDelta(t, Radius(l, p), math.Hypot(pos.X-cx, pos.Y-cy), 1e-6)
	}
}

func TestDirectionalEdges(t *testing.T) {
	l := lattice.New(400, 400)
	l.Seed(parameter.SeedPoint, nil)
	p := parameter.Default()
	_, cy := l.Center()
	r := Radius(l, p)

	p.SpawnMode = parameter.SpawnTop
	pos, err := Next(l, p, vmath.NewFastRand(2))
	require.NoError(t, err)
	assert.InDelta(t, cy-r, pos.Y, 1e-9)

	p.SpawnMode = parameter.SpawnBottom
	pos, err = Next(l, p, vmath.NewFastRand(2))
	require.NoError(t, err)
	assert.InDelta(t, cy+r, pos.Y, 1e-9)
}

func TestCornersStayNearCorners(t *testing.T) {
	l := lattice.New(400, 400)
	l.Seed(parameter.SeedPoint, nil)
	p := parameter.Default()
	p.SpawnMode = parameter.SpawnCorners
	cx, cy := l.Center()
	r := Radius(l, p)
	rng := vmath.NewFastRand(4)
	for i := 0; i < 200; i++ {
		pos, err := Next(l, p, rng)
		require.NoError(t, err)
		dx, dy := math.Abs(pos.X-cx), math.Abs(pos.Y-cy)
		assert.True(t, dx <= r && dx >= r-CornerRegion, "dx %v", dx)
		assert.True(t, dy <= r && dy >= r-CornerRegion, "dy %v", dy)
	}
}

func TestRandomOutsideAggregate(t *testing.T) {
	l := lattice.New(100, 100)
	l.Seed(parameter.SeedBlock, nil)
	p := parameter.Default()
	p.SpawnMode = parameter.SpawnRandom
	rng := vmath.NewFastRand(8)
	cx, cy := l.Center()
	for i := 0; i < 200; i++ {
		pos, err := Next(l, p, rng)
		require.NoError(t, err)
		assert.Greater(t, math.Hypot(pos.X-cx, pos.Y-cy), l.CurrentRadius())
	}
}

func TestExhausted(t *testing.T) {
	l := lattice.New(8, 8)
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			_ = l.Attach(x, y, 0, 0, 0, 0)
		}
	}
	_, err := Next(l, parameter.Default(), vmath.NewFastRand(1))
	var ex *SpawnExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, MaxSpawnAttempts, ex.Attempts)
}

func TestEdgeStepsInwardPastFilledRow(t *testing.T) {
	tests := []struct {
		mode parameter.SpawnMode
		fill func(l *lattice.Lattice)
		ok   func(x, y int) bool
	}{
		{
			parameter.SpawnTop,
			func(l *lattice.Lattice) {
				for x := 0; x < l.Width(); x++ {
					_ = l.Attach(x, 0, 0, 0, 0, 0)
				}
			},
			func(x, y int) bool { return y == 1 },
		},
		{
			parameter.SpawnLeft,
			func(l *lattice.Lattice) {
				for y := 0; y < l.Height(); y++ {
					for x := 0; x < 3; x++ {
						_ = l.Attach(x, y, 0, 0, 0, 0)
					}
				}
			},
			func(x, y int) bool { return x == 3 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			l := lattice.New(80, 48)
			tt.fill(l)
			p := parameter.Default()
			p.SpawnMode = tt.mode
			rng := vmath.NewFastRand(3)
			for i := 0; i < 100; i++ {
				pos, err := Next(l, p, rng)
				require.NoError(t, err)
				x, y := pos.Cell()
				require.False(t, l.IsOccupied(x, y))
				assert.True(t, tt.ok(x, y), "spawn at (%d,%d)", x, y)
			}
		})
	}
}

func TestEdgeExhaustedWhenHalfFilled(t *testing.T) {
	l := lattice.New(40, 40)
	for y := 0; y <= 20; y++ {
		for x := 0; x < l.Width(); x++ {
			_ = l.Attach(x, y, 0, 0, 0, 0)
		}
	}
	p := parameter.Default()
	p.SpawnMode = parameter.SpawnTop
	_, err := Next(l, p, vmath.NewFastRand(1))
	var ex *SpawnExhaustedError
	require.True(t, errors.As(err, &ex), "inward search stops at the center line")

	p.SpawnMode = parameter.SpawnBottom
	_, err = Next(l, p, vmath.NewFastRand(1))
	assert.NoError(t, err)
}
