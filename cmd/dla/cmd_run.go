package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/app"
	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/simulation"
	"github.com/lixenwraith/dla-sim/sonify"
)

// defaultSavePath is where the 'w' key writes parameters when --save-config is unset
const defaultSavePath = "dla-params.yaml"

func (c *cli) runInteractive(cmd *cobra.Command) error {
	p, err := c.params(cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			c.logger.Error("crashed", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDLA CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cols, rows := app.SimSize(screen.Size())
	sim, err := simulation.New(simulation.Config{
		Params: p,
		Cols:   cols,
		Rows:   rows,
		Seed:   c.rngSeed,
		Logger: c.logger.Named("sim"),
		Strict: c.debug,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	audioCfg := sonify.LoadConfig()
	if cmd.Flags().Changed("sound") {
		audioCfg.Enabled = c.sound
	}
	player := sonify.NewPlayer(audioCfg, c.logger.Named("sound"))
	if err := player.Start(); err != nil {
		// Growth runs without sound
		c.logger.Warn("audio unavailable", zap.Error(err))
	}
	defer player.Close()

	var presets []parameter.Preset
	if store, err := parameter.NewPresetStore(c.presetDir); err == nil {
		presets, err = store.List()
		if err != nil {
			c.logger.Warn("some user presets were skipped", zap.Error(err))
		}
	} else {
		presets = parameter.Builtins()
	}

	savePath := c.saveConfig
	if savePath == "" {
		savePath = defaultSavePath
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()

	c.logger.Info("starting",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("particle_count", sim.Params().ParticleCount))

	return app.New(screen, sim, app.Options{
		Presets:  presets,
		SavePath: savePath,
		Player:   player,
		Logger:   c.logger.Named("app"),
	}).Run(ctx)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
