package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/dla-sim/parameter"
)

func newPresetsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List built-in and user presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := parameter.NewPresetStore(c.presetDir)
			if err != nil {
				return err
			}
			presets, err := store.List()
			if err != nil {
				c.logger.Warn("some user presets were skipped", zap.Error(err))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range presets {
				source := "user"
				if p.Builtin {
					source = "builtin"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, source, p.Description)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(
		newPresetSaveCmd(c),
		newPresetDeleteCmd(c),
	)
	return cmd
}

func newPresetSaveCmd(c *cli) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the effective parameters as a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.params(cmd)
			if err != nil {
				return err
			}
			store, err := parameter.NewPresetStore(c.presetDir)
			if err != nil {
				return err
			}
			for _, b := range parameter.Builtins() {
				if strings.EqualFold(b.Name, args[0]) {
					return fmt.Errorf("preset %q is built in", args[0])
				}
			}
			if err := store.Save(parameter.Preset{Name: args[0], Description: description, Params: p}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved preset %q to %s\n", args[0], store.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Preset description")
	return cmd
}

func newPresetDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := parameter.NewPresetStore(c.presetDir)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %q\n", args[0])
			return nil
		},
	}
}
