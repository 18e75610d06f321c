package sonify

import (
	"os"
	"strconv"
	"time"
)

// Config holds sound settings; volumes are linear gains in [0, 1]
type Config struct {
	Enabled      bool
	MasterVolume float64
	TickVolume   float64
	ChimeVolume  float64
	SampleRate   int
	// TickInterval is the minimum gap between adhesion ticks
	TickInterval time.Duration
}

// DefaultConfig returns sound settings with output disabled
func DefaultConfig() *Config {
	return &Config{
		MasterVolume: 0.5,
		TickVolume:   0.4,
		ChimeVolume:  0.8,
		SampleRate:   44100,
		TickInterval: 40 * time.Millisecond,
	}
}

// LoadConfig overlays DLA_SOUND and DLA_VOLUME (0-100) onto the defaults
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("DLA_SOUND"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}
	if volume := os.Getenv("DLA_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}
	return cfg
}
