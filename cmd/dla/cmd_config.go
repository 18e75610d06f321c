package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/dla-sim/parameter"
)

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective parameters as YAML",
		Long: `Print the parameter set after applying --config, --preset and flags.
The output can be loaded back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.params(cmd)
			if err != nil {
				return err
			}
			data, err := parameter.MarshalSnapshot(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
