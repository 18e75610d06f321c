package sonify

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/scheduler"
)

// Player mixes growth sounds; it streams to the speaker only after Start
type Player struct {
	mu       sync.Mutex
	cfg      *Config
	mixer    *beep.Mixer
	logger   *zap.Logger
	started  bool
	lastTick time.Time
	now      func() time.Time
}

// NewPlayer creates a player; a nil cfg uses DefaultConfig
func NewPlayer(cfg *Config, logger *zap.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
		now:    time.Now,
	}
}

// Start opens the audio device and plays the mixer; disabled players are a no-op
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || p.started {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	p.logger.Debug("audio started", zap.Int("sample_rate", p.cfg.SampleRate))
	return nil
}

// Close stops playback and releases the device
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// Attached plays one tick per adhesion, throttled to TickInterval
// radius normalizes the attachment distance into a pitch
func (p *Player) Attached(a scheduler.Attachment, radius float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return
	}
	now := p.now()
	if !p.lastTick.IsZero() && now.Sub(p.lastTick) < p.cfg.TickInterval {
		return
	}
	p.lastTick = now
	p.add(NewTick(p.cfg, a.Distance/max(radius, 1)))
}

// Complete plays the completion chime
func (p *Player) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return
	}
	chime, err := NewChime(p.cfg)
	if err != nil {
		p.logger.Warn("chime unavailable", zap.Error(err))
		return
	}
	p.add(chime)
}

// Active returns the number of sounds still playing
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Source exposes the mix for offline streaming when no device is started
func (p *Player) Source() beep.Streamer { return p.mixer }

func (p *Player) add(s beep.Streamer) {
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}
