// Package app drives a Simulation on a tcell screen: one ticker loop advances and draws, a pump goroutine forwards input
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/render"
	"github.com/lixenwraith/dla-sim/simulation"
	"github.com/lixenwraith/dla-sim/sonify"
	"github.com/lixenwraith/dla-sim/spawn"
)

const (
	// DefaultFrameInterval is ~60 FPS
	DefaultFrameInterval = 16 * time.Millisecond
	// StatusRows is the number of screen rows reserved below the aggregate
	StatusRows = 1

	messageTTL  = 2 * time.Second
	eventBuffer = 100
)

// Options configures the host loop
type Options struct {
	FrameInterval time.Duration
	// Presets cycled with 'p'; empty disables the key
	Presets []parameter.Preset
	// SavePath receives a parameter snapshot on 'w'; empty disables the key
	SavePath string
	Player   *sonify.Player
	Logger   *zap.Logger
	// StartPaused starts with growth halted
	StartPaused bool
}

// App owns the screen for the duration of Run
type App struct {
	screen tcell.Screen
	sim    *simulation.Simulation
	opts   Options
	logger *zap.Logger

	paused    bool
	completed bool
	presetIdx int
	message   string
	messageAt time.Time
	now       func() time.Time
}

// New binds an initialized screen to a simulation
func New(screen tcell.Screen, sim *simulation.Simulation, opts Options) *App {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		screen:    screen,
		sim:       sim,
		opts:      opts,
		logger:    logger,
		paused:    opts.StartPaused,
		presetIdx: -1,
		now:       time.Now,
	}
}

// SimSize returns the simulation size in terminal cells for a screen size
func SimSize(width, height int) (int, int) {
	return max(width, 1), max(height-StatusRows, 1)
}

// Run advances and draws until ctx is done or a quit key arrives
// It finalizes the screen on return and waits for the input goroutine
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	pumpDone := make(chan struct{})

	go func() {
		defer close(pumpDone)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		a.screen.Fini()
		<-pumpDone
	}()

	a.resize()
	a.draw()

	ticker := time.NewTicker(a.opts.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			a.draw()

		case <-ticker.C:
			if err := a.tick(); err != nil {
				return err
			}
			a.draw()
		}
	}
}

// tick runs one frame of growth
func (a *App) tick() error {
	if a.paused || a.completed {
		return nil
	}
	rep, err := a.sim.Advance(0)
	if err != nil {
		var ex *spawn.SpawnExhaustedError
		if !errors.As(err, &ex) {
			return err
		}
		a.paused = true
		a.notify("spawn exhausted, paused")
		return nil
	}

	if rep.Last != nil && a.opts.Player != nil {
		a.opts.Player.Attached(*rep.Last, a.sim.Stats().Radius)
	}
	if a.sim.IsComplete() {
		a.completed = true
		a.notify("complete")
		if a.opts.Player != nil {
			a.opts.Player.Complete()
		}
	}
	return nil
}

// handleEvent applies one input event, false on quit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case ' ':
		a.paused = !a.paused
	case 'r':
		a.reset(a.sim.Params())
	case '+', '=':
		a.adjust("steps_per_frame", 1)
	case '-', '_':
		a.adjust("steps_per_frame", -1)
	case 'c':
		a.adjust("color_scheme", 1)
	case 'C':
		a.adjust("color_scheme", -1)
	case 'm':
		a.adjust("color_mode", 1)
	case 'M':
		a.adjust("color_mode", -1)
	case 'i':
		a.adjust("invert", 1)
	case 'h':
		a.adjust("highlight", 1)
	case 'H':
		a.adjust("highlight", -1)
	case 's':
		a.adjust("spawn_mode", 1)
	case 'b':
		a.adjust("boundary", 1)
	case 'n':
		a.adjust("neighborhood", 1)
	case 'p':
		a.nextPreset()
	case 'w':
		a.save()
	}
	return true
}

func (a *App) adjust(name string, dir int) {
	if err := a.sim.AdjustParam(name, dir); err != nil {
		a.notify(err.Error())
		return
	}
	v, _ := a.sim.Params().Get(name)
	a.notify(fmt.Sprintf("%s = %s", name, v))
	if a.completed && !a.sim.IsComplete() {
		a.completed = false
	}
}

func (a *App) reset(p parameter.Params) {
	if err := a.sim.Reset(p); err != nil {
		a.notify(err.Error())
		return
	}
	a.completed = false
	a.paused = false
}

func (a *App) nextPreset() {
	if len(a.opts.Presets) == 0 {
		return
	}
	a.presetIdx = (a.presetIdx + 1) % len(a.opts.Presets)
	pr := a.opts.Presets[a.presetIdx]
	a.reset(pr.Params)
	a.notify("preset: " + pr.Name)
	a.logger.Debug("preset applied", zap.String("name", pr.Name))
}

func (a *App) save() {
	if a.opts.SavePath == "" {
		return
	}
	if err := parameter.SaveSnapshot(a.opts.SavePath, a.sim.Params()); err != nil {
		a.logger.Warn("save failed", zap.Error(err))
		a.notify("save failed: " + err.Error())
		return
	}
	a.notify("saved " + a.opts.SavePath)
}

func (a *App) notify(msg string) {
	a.message = msg
	a.messageAt = a.now()
}

// resize matches the lattice to the screen; the simulation restarts on change
func (a *App) resize() {
	w, h := a.screen.Size()
	a.sim.Resize(SimSize(w, h))
	a.completed = a.sim.IsComplete()
}

func (a *App) draw() {
	a.screen.Clear()
	f := a.sim.Render()
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			c := f.Cells[row*f.Cols+col]
			if c.Blank {
				continue
			}
			a.screen.SetContent(col, row, c.Glyph, nil, cellStyle(c.Color))
		}
	}
	a.drawStatus(f.Rows)
	a.screen.Show()
}

func cellStyle(c render.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func (a *App) drawStatus(row int) {
	w, _ := a.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}
	x := 0
	for _, r := range a.statusText() {
		if x >= w {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x++
	}
}

// statusText is the one-line summary shown under the aggregate
func (a *App) statusText() string {
	st := a.sim.Stats()
	p := a.sim.Params()

	state := "running"
	switch {
	case a.completed:
		state = "complete"
	case a.paused:
		state = "paused"
	}
	text := fmt.Sprintf(" DLA %d/%d %3.0f%%  r=%.1f  %s/%s  spf=%d  %s ",
		st.Stuck, st.Target, st.Progress*100, st.Radius,
		p.ColorScheme, p.ColorMode, p.StepsPerFrame, state)

	if a.message != "" && a.now().Sub(a.messageAt) < messageTTL {
		text += "| " + a.message + " "
	}
	return text
}
