package cmd

import (
	"github.com/spf13/cobra"

	"fonoteca/internal/application"
	"fonoteca/internal/application/commands"
)

// filterFlags are the structural criteria shared by list and search
type filterFlags struct {
	assetType   string
	tag         string
	minDuration string
	maxDuration string
	page        int
	pageSize    int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.assetType, "type", "t", "", "only assets of this type")
	flags.StringVar(&f.tag, "tag", "", "only assets with a tag containing this text")
	flags.StringVar(&f.minDuration, "min", "", "minimum duration in seconds")
	flags.StringVar(&f.maxDuration, "max", "", "maximum duration in seconds")
	flags.IntVarP(&f.page, "page", "p", 1, "page to show")
	flags.IntVarP(&f.pageSize, "page-size", "n", 0, "assets per page (default from config)")
}

func (f *filterFlags) criteria() (application.FilterCriteria, error) {
	return application.ParseCriteria(f.assetType, f.tag, f.minDuration, f.maxDuration)
}

func newListCmd(c *cli) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets in the catalog",
		Long: `List assets one page at a time, optionally narrowed by type, tag
and duration.

Examples:
  fonoteca-cli list
  fonoteca-cli list --type ambient --min 60
  fonoteca-cli list --tag rain --page 2 --page-size 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := f.criteria()
			if err != nil {
				return err
			}

			listCmd := commands.NewListCommand(c.backend.Engine, criteria, f.page, f.pageSize)
			page, err := listCmd.Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printPage(page)
		},
	}
	f.register(cmd)
	return cmd
}
