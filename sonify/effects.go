// Package sonify turns growth events into short synthesized sounds
package sonify

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

const (
	TickDuration = 35 * time.Millisecond
	TickAttack   = 2 * time.Millisecond
	TickRelease  = 25 * time.Millisecond

	ChimeNoteDuration = 140 * time.Millisecond
	ChimeAttack       = 5 * time.Millisecond
	ChimeRelease      = 110 * time.Millisecond

	// TickBaseFreq is the pitch of an attachment at the aggregate center (A4)
	TickBaseFreq = 440.0
)

// pentatonic semitone offsets over two octaves; far attachments climb the scale
var pentatonic = []int{0, 2, 4, 7, 9, 12, 14, 16, 19, 21, 24}

// chimeNotes is a rising C major triad plus octave
var chimeNotes = []float64{1046.50, 1318.51, 1567.98, 2093.00}

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping over a fixed length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	releaseStart   int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release gain curve
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		releaseStart:   max(total-rel, att),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rem := e.totalSamples - e.position; len(samples) > rem {
		samples = samples[:rem]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// TickFreq maps a normalized distance from the center to a pentatonic pitch
func TickFreq(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	step := pentatonic[int(math.Round(t*float64(len(pentatonic)-1)))]
	return TickBaseFreq * math.Pow(2, float64(step)/12)
}

// NewTick returns a short blip for one adhesion; t in [0, 1] selects the pitch
func NewTick(cfg *Config, t float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := TickFreq(t)

	body := NewEnvelope(NewOscillator(freq, TickDuration, WaveTriangle, rate), TickDuration, TickAttack, TickRelease, rate)
	click := NewEnvelope(NewOscillator(0, TickAttack*2, WaveNoise, rate), TickAttack*2, 0, TickAttack, rate)

	mixed := beep.Mix(
		newVolume(body, 0.8),
		newVolume(click, 0.2),
	)
	return newVolume(mixed, cfg.TickVolume*cfg.MasterVolume)
}

// NewChime returns the completion arpeggio
func NewChime(cfg *Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, f := range chimeNotes {
		sine, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, err
		}
		tone := beep.Take(rate.N(ChimeNoteDuration), sine)
		notes = append(notes, NewEnvelope(tone, ChimeNoteDuration, ChimeAttack, ChimeRelease, rate))
	}
	return newVolume(beep.Seq(notes...), cfg.ChimeVolume*cfg.MasterVolume), nil
}
