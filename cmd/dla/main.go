package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/dla-sim/parameter"
)

// debugLogFile receives logs in interactive mode when --debug is set without --log-file
const debugLogFile = "dla-debug.log"

// flagParams maps shorthand flags onto parameter names
var flagParams = map[string]string{
	"particles":  "particle_count",
	"stickiness": "base_stickiness",
	"seed":       "seed_pattern",
	"speed":      "steps_per_frame",
	"spawn":      "spawn_mode",
	"boundary":   "boundary",
	"scheme":     "color_scheme",
	"color-mode": "color_mode",
}

// cli holds resolved flags and the logger shared by all commands
type cli struct {
	particles   int
	stickiness  float64
	seedPattern string
	speed       int
	spawnMode   string
	boundary    string
	scheme      string
	colorMode   string
	sets        []string
	preset      string
	presetDir   string
	configPath  string
	saveConfig  string
	sound       bool
	debug       bool
	logFile     string
	verbose     bool
	rngSeed     uint64

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "dla",
		Short: "Diffusion-limited aggregation in the terminal",
		Long: `dla grows a fractal aggregate from random walkers and draws it
with braille characters, eight lattice dots per terminal cell.

Run without a subcommand to start the interactive view.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.buildLogger(cmd.Name() == "dla")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInteractive(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&c.particles, "particles", "n", parameter.DefaultParticleCount, "Particle count including seeds")
	pf.Float64VarP(&c.stickiness, "stickiness", "k", parameter.DefaultBaseStickiness, "Base stickiness")
	pf.StringVar(&c.seedPattern, "seed", parameter.SeedPoint.String(), "Seed pattern: "+strings.Join(parameter.Names("seed_pattern"), ", "))
	pf.IntVarP(&c.speed, "speed", "s", parameter.DefaultStepsPerFrame, "Walk steps per frame")
	pf.StringVar(&c.spawnMode, "spawn", parameter.SpawnCircle.String(), "Spawn mode: "+strings.Join(parameter.Names("spawn_mode"), ", "))
	pf.StringVar(&c.boundary, "boundary", parameter.BoundaryAbsorb.String(), "Boundary policy: "+strings.Join(parameter.Names("boundary"), ", "))
	pf.StringVar(&c.scheme, "scheme", parameter.SchemeIce.String(), "Color scheme: "+strings.Join(parameter.Names("color_scheme"), ", "))
	pf.StringVar(&c.colorMode, "color-mode", parameter.ColorAge.String(), "Color mode: "+strings.Join(parameter.Names("color_mode"), ", "))
	pf.StringArrayVar(&c.sets, "set", nil, "Set any parameter as name=value (repeatable)")
	pf.StringVarP(&c.preset, "preset", "p", "", "Start from a named preset")
	pf.StringVar(&c.presetDir, "preset-dir", "", "User preset directory (default <config dir>/dla-sim/presets)")
	pf.StringVarP(&c.configPath, "config", "c", "", "Load parameters from a YAML file")
	pf.StringVar(&c.saveConfig, "save-config", "", "Write the effective parameters to a YAML file")
	pf.BoolVar(&c.sound, "sound", false, "Play adhesion ticks and a completion chime")
	pf.BoolVar(&c.debug, "debug", false, "Log to "+debugLogFile+" and panic on lattice invariant violations")
	pf.StringVar(&c.logFile, "log-file", "", "Write logs to this file")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Debug-level logging")
	pf.Uint64Var(&c.rngSeed, "rng-seed", 0, "Random seed for reproducible growth (0 = time based)")

	rootCmd.AddCommand(
		newRenderCmd(c),
		newPresetsCmd(c),
		newConfigCmd(c),
	)
	return rootCmd
}

// buildLogger returns a production zap logger; interactive runs log only to a file since tcell owns the terminal
func (c *cli) buildLogger(interactive bool) (*zap.Logger, error) {
	path := c.logFile
	if path == "" && c.debug {
		path = debugLogFile
	}
	if interactive && path == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	if c.verbose || c.debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if !interactive && path == "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	if path != "" {
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}
	return config.Build()
}

// params resolves the effective parameter set: defaults, then --config, then --preset, then explicit flags
func (c *cli) params(cmd *cobra.Command) (parameter.Params, error) {
	p := parameter.Default()

	if c.configPath != "" {
		loaded, err := parameter.LoadSnapshot(c.configPath)
		if err != nil {
			return p, err
		}
		p = loaded
	}

	if c.preset != "" {
		store, err := parameter.NewPresetStore(c.presetDir)
		if err != nil {
			return p, err
		}
		pr, err := store.Find(c.preset)
		if err != nil {
			return p, err
		}
		p = pr.Params
		c.logger.Debug("preset loaded", zap.String("name", pr.Name))
	}

	flags := cmd.Flags()
	for flagName, param := range flagParams {
		f := flags.Lookup(flagName)
		if f == nil || !f.Changed {
			continue
		}
		next, err := p.Set(param, f.Value.String())
		if err != nil {
			return p, fmt.Errorf("--%s: %w", flagName, err)
		}
		p = next
	}

	for _, kv := range c.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return p, fmt.Errorf("--set %q: want name=value", kv)
		}
		next, err := p.Set(name, value)
		if err != nil {
			return p, fmt.Errorf("--set: %w", err)
		}
		p = next
	}

	if err := p.Validate(); err != nil {
		return p, err
	}

	if c.saveConfig != "" {
		if err := parameter.SaveSnapshot(c.saveConfig, p); err != nil {
			return p, err
		}
		c.logger.Info("parameters saved", zap.String("path", c.saveConfig))
	}
	return p, nil
}
