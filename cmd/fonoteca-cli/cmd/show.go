package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fonoteca/internal/application/commands"
)

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			asset, err := commands.NewGetCommand(c.backend.API, id).Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printAsset(asset)
		},
	}
}

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.NewStatsCommand(c.backend.API).Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printStats(res)
		},
	}
}

func newTypesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the asset types the backend accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := c.backend.API.Types(c.ctx(cmd))
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(types)
			}
			fmt.Fprintln(c.out, strings.Join(types, "\n"))
			return nil
		},
	}
}

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commands.NewHealthCommand(c.backend.API).Execute(c.ctx(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s backend is healthy\n", c.cfg.Backend)
			return nil
		},
	}
}
