package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"fonoteca/internal/application/commands"
)

func newSearchCmd(c *cli) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long: `Search assets by meaning, ranked by relevance on the server.

Type, tag and duration flags narrow the results. When the server cannot be
reached the structural filters are applied to the local listing instead and
a warning is printed.

Examples:
  fonoteca-cli search "distant thunder"
  fonoteca-cli search tense strings --type mood --max 120`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := f.criteria()
			if err != nil {
				return err
			}

			searchCmd := commands.NewSearchCommand(c.backend.Engine, strings.Join(args, " "), criteria)
			searchCmd.Page = f.page
			searchCmd.PageSize = f.pageSize
			page, err := searchCmd.Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printPage(page)
		},
	}
	f.register(cmd)
	return cmd
}
