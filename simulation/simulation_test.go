package simulation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/scheduler"
	"github.com/lixenwraith/dla-sim/spawn"
)

func newSim(t *testing.T, mutate func(*parameter.Params)) *Simulation {
	t.Helper()
	p := parameter.Default()
	if mutate != nil {
		mutate(&p)
	}
	s, err := New(Config{Params: p, Cols: 40, Rows: 12, Seed: 99, Strict: true})
	require.NoError(t, err)
	return s
}

// edgeGrowth grows fast: top spawns stick to the top edge or the aggregate within a few steps
func edgeGrowth(p *parameter.Params) {
	p.ParticleCount = parameter.MinParticleCount
	p.SpawnMode = parameter.SpawnTop
	p.Boundary = parameter.BoundaryStick
	p.BaseStickiness = 1
}

func TestNewRejectsInvalid(t *testing.T) {
	p := parameter.Default()
	p.BaseStickiness = 2
	_, err := New(Config{Params: p, Cols: 10, Rows: 10})
	var ip *parameter.InvalidParamError
	require.True(t, errors.As(err, &ip))
	assert.Equal(t, "base_stickiness", ip.Name)

	_, err = New(Config{Params: parameter.Default(), Cols: 0, Rows: 10})
	assert.Error(t, err)
}

func TestNewSeedsLattice(t *testing.T) {
	s := newSim(t, nil)
	st := s.Stats()
	assert.Equal(t, 1, st.Stuck)
	assert.Equal(t, 1, st.Seeds)
	assert.Equal(t, 80, s.Lattice().Width())
	assert.Equal(t, 48, s.Lattice().Height())
	assert.False(t, s.IsComplete())

	f := s.Render()
	assert.Equal(t, 40, f.Cols)
	assert.Equal(t, 12, f.Rows)
	assert.Equal(t, 1, f.Filled())
}

func TestParticleCountCappedToCapacity(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := parameter.Default()
	p.ParticleCount = parameter.MaxParticleCount
	s, err := New(Config{Params: p, Cols: 10, Rows: 4, Seed: 1, Logger: zap.New(core)})
	require.NoError(t, err)

	// 20×16 dots
	assert.Equal(t, 240, s.MaxParticles())
	assert.Equal(t, 240, s.Params().ParticleCount)
	assert.Equal(t, 1, logs.FilterMessage("particle count capped to lattice capacity").Len())
}

func TestAdvanceToCompletion(t *testing.T) {
	s := newSim(t, edgeGrowth)
	for i := 0; i < 2000 && !s.IsComplete(); i++ {
		_, err := s.Advance(500)
		require.NoError(t, err)
	}
	require.True(t, s.IsComplete())

	st := s.Stats()
	assert.Equal(t, scheduler.Complete, st.State)
	assert.Equal(t, parameter.MinParticleCount, st.Stuck)
	assert.Equal(t, 1.0, st.Progress)
	assert.Equal(t, st.Stuck-st.Seeds, st.MaxOrder)
	assert.Positive(t, st.Steps)

	rep, err := s.Advance(50)
	require.NoError(t, err)
	assert.Zero(t, rep.Steps, "complete simulations do not step")
}

func TestAdvanceDefaultsToStepsPerFrame(t *testing.T) {
	s := newSim(t, func(p *parameter.Params) { p.StepsPerFrame = 7 })
	rep, err := s.Advance(0)
	require.NoError(t, err)
	assert.Equal(t, 7, rep.Steps)
	assert.EqualValues(t, 7, s.Stats().Steps)
}

func TestSetParam(t *testing.T) {
	s := newSim(t, nil)

	require.NoError(t, s.SetParam("base_stickiness", "0.4"))
	assert.Equal(t, 0.4, s.Params().BaseStickiness)

	require.NoError(t, s.SetParam("color-scheme", "fire"))
	assert.Equal(t, parameter.SchemeFire, s.Params().ColorScheme)

	before := s.Params()
	tests := []struct {
		name, value, field string
	}{
		{"base_stickiness", "1.5", "base_stickiness"},
		{"particle_count", "abc", "particle_count"},
		{"particle_count", "9000", "particle_count"}, // over capacity of 80×48×0.75 = 2880
		{"spawn_mode", "sideways", "spawn_mode"},
		{"no_such_param", "1", "no_such_param"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			err := s.SetParam(tt.name, tt.value)
			var ip *parameter.InvalidParamError
			require.True(t, errors.As(err, &ip), "got %v", err)
			assert.Equal(t, tt.field, ip.Name)
			assert.Equal(t, before, s.Params(), "state unchanged on error")
		})
	}
}

func TestSeedPatternAppliesOnReset(t *testing.T) {
	s := newSim(t, nil)
	require.NoError(t, s.SetParam("seed_pattern", "line"))
	assert.Equal(t, 1, s.Stats().Seeds, "seed change waits for reset")

	require.NoError(t, s.Reset(s.Params()))
	assert.Greater(t, s.Stats().Seeds, 1)
}

func TestReset(t *testing.T) {
	s := newSim(t, edgeGrowth)
	for i := 0; i < 20; i++ {
		_, err := s.Advance(1000)
		require.NoError(t, err)
	}
	require.Greater(t, s.Stats().Stuck, 1)

	p := s.Params()
	p.SeedPattern = parameter.SeedCross
	require.NoError(t, s.Reset(p))
	st := s.Stats()
	assert.Equal(t, st.Seeds, st.Stuck)
	assert.Zero(t, st.MaxOrder)
	assert.Zero(t, st.Steps)
	assert.Equal(t, scheduler.Idle, st.State)

	bad := p
	bad.StepsPerFrame = 0
	assert.Error(t, s.Reset(bad))
	assert.Equal(t, p, s.Params())
}

func TestResize(t *testing.T) {
	s := newSim(t, nil)
	s.Resize(20, 5)
	assert.Equal(t, 40, s.Lattice().Width())
	assert.Equal(t, 20, s.Lattice().Height())
	assert.Equal(t, 600, s.MaxParticles())
	assert.Equal(t, 600, s.Params().ParticleCount, "capped to the smaller lattice")
	assert.Equal(t, 1, s.Stats().Stuck)

	lat := s.Lattice()
	s.Resize(20, 5)
	assert.Same(t, lat, s.Lattice(), "same size is a no-op")
	s.Resize(0, 5)
	assert.Same(t, lat, s.Lattice())
}

func TestExhaustedAndRecovery(t *testing.T) {
	s := newSim(t, func(p *parameter.Params) { p.SpawnMode = parameter.SpawnTop })
	// Filling every row down to the center line leaves top spawns nowhere to step inward to
	lat := s.Lattice()
	_, cy := lat.Center()
	for y := 0; y <= int(cy); y++ {
		for x := 0; x < lat.Width(); x++ {
			if !lat.IsOccupied(x, y) {
				require.NoError(t, lat.Attach(x, y, 0, lat.DistanceFromCenter(x, y), 0, 0))
			}
		}
	}
	require.Less(t, lat.Count(), s.Params().ParticleCount)

	_, err := s.Advance(10)
	var ex *spawn.SpawnExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.True(t, s.Exhausted())
	assert.True(t, s.Stats().Exhausted)
	assert.False(t, s.IsComplete())

	require.NoError(t, s.SetParam("spawn_mode", "bottom"))
	assert.False(t, s.Exhausted(), "parameter change clears exhaustion for a retry")

	rep, err := s.Advance(10)
	require.NoError(t, err)
	assert.Equal(t, 10, rep.Steps)
}

func TestAdjustParam(t *testing.T) {
	s := newSim(t, nil)
	base := s.Params().StepsPerFrame
	require.NoError(t, s.AdjustParam("steps_per_frame", 1))
	assert.Equal(t, base+1, s.Params().StepsPerFrame)

	for i := 0; i < 100; i++ {
		require.NoError(t, s.AdjustParam("steps_per_frame", 1))
	}
	assert.Equal(t, parameter.MaxStepsPerFrame, s.Params().StepsPerFrame)

	assert.Error(t, s.AdjustParam("bogus", 1))
}
