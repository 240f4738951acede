package cmd

import (
	"github.com/spf13/cobra"

	"fonoteca/internal/application"
	"fonoteca/internal/application/commands"
)

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an asset",
		Long: `Delete an asset from the catalog.

Warning: This operation cannot be undone. With the local backend the
imported audio file is removed as well.

Examples:
  fonoteca-cli delete 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			deleteCmd := commands.NewDeleteCommand(c.backend.API, nil, id)
			result, err := deleteCmd.Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printMessage(result.Message, result.Warning, nil)
		},
	}
}

func parseID(s string) (int64, error) {
	return application.ParseID(s)
}
