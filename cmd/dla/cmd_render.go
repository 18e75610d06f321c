package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lixenwraith/dla-sim/render"
	"github.com/lixenwraith/dla-sim/simulation"
	"github.com/lixenwraith/dla-sim/spawn"
)

const (
	fallbackCols = 80
	fallbackRows = 24
	// renderChunk is the number of walk steps per Advance call in headless mode
	renderChunk = 10000
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		cols, rows int
		maxSteps   int64
		output     string
		color      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Grow an aggregate without the interactive view and print it",
		Long: `Grow to particle_count (or until --max-steps) and print the final
frame as braille text with color escapes (see --color).

The size defaults to the current terminal, or 80x24 when stdout is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.params(cmd)
			if err != nil {
				return err
			}
			mode, err := render.ParseColorMode(color)
			if err != nil {
				return err
			}

			cols, rows = terminalSize(cols, rows)
			sim, err := simulation.New(simulation.Config{
				Params: p,
				Cols:   cols,
				Rows:   rows,
				Seed:   c.rngSeed,
				Logger: c.logger.Named("sim"),
				Strict: c.debug,
			})
			if err != nil {
				return err
			}

			if err := growHeadless(sim, maxSteps, c.logger); err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := sim.Render().WriteANSI(out, mode); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}

			st := sim.Stats()
			fmt.Fprintf(cmd.ErrOrStderr(), "particles %d/%d  radius %.1f  steps %d  escaped %d  removed %d\n",
				st.Stuck, st.Target, st.Radius, st.Steps, st.Escaped, st.Removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "Width in terminal cells (0 = terminal width)")
	cmd.Flags().IntVar(&rows, "rows", 0, "Height in terminal cells (0 = terminal height minus one)")
	cmd.Flags().Int64Var(&maxSteps, "max-steps", 50_000_000, "Stop after this many walk steps even if incomplete")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the frame to a file instead of stdout")
	cmd.Flags().StringVar(&color, "color", "truecolor", "Color mode: auto, truecolor, 256, none")
	return cmd
}

// terminalSize fills unset dimensions from stdout, falling back to 80x24
func terminalSize(cols, rows int) (int, int) {
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	w, h := fallbackCols, fallbackRows
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if tw, th, err := term.GetSize(fd); err == nil && tw > 0 && th > 1 {
			// Leave a line for the prompt
			w, h = tw, th-1
		}
	}
	if cols <= 0 {
		cols = w
	}
	if rows <= 0 {
		rows = h
	}
	return cols, rows
}

// growHeadless advances until completion, the step budget, or spawn exhaustion
func growHeadless(sim *simulation.Simulation, maxSteps int64, logger *zap.Logger) error {
	for !sim.IsComplete() && sim.Stats().Steps < maxSteps {
		n := int(min(renderChunk, maxSteps-sim.Stats().Steps))
		if _, err := sim.Advance(n); err != nil {
			var ex *spawn.SpawnExhaustedError
			if errors.As(err, &ex) {
				logger.Warn("stopped early", zap.Error(err))
				return nil
			}
			return err
		}
	}
	if !sim.IsComplete() {
		logger.Warn("step budget reached before completion",
			zap.Int64("max_steps", maxSteps),
			zap.Int("stuck", sim.Stats().Stuck))
	}
	return nil
}
