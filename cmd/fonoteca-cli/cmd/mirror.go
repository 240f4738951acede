package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fonoteca/internal/adapters/sqlite"
	"fonoteca/internal/backend"
)

func newMirrorCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror",
		Short: "Copy the remote catalog into the local database",
		Long: `Copy every asset of the remote catalog into the local SQLite database
so it can be browsed with --backend sqlite while offline.

Remote ids are kept. Assets whose content did not change are left alone and
assets gone from the server are removed. A failed run leaves the previous
mirror untouched. A running fonoteca TUI on the same database picks up the
changes by itself.

Examples:
  fonoteca-cli mirror
  fonoteca-cli mirror --api-url http://catalog.lan:8000 --db ~/fonoteca.db`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noBackend: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.Open(c.cfg.DBPath, sqlite.WithLogger(c.log.Logger))
			if err != nil {
				return err
			}
			defer store.Close()

			src := backend.NewHTTPClient(c.cfg, c.log.Logger)
			c.log.Info().Str("from", src.BaseURL()).Str("to", store.Path()).Msg("mirroring catalog")

			stats, err := store.Mirror(c.ctx(cmd), src)
			if err != nil {
				return fmt.Errorf("mirror failed: %w", err)
			}
			if c.jsonOutput {
				return c.printJSON(stats)
			}
			fmt.Fprintln(c.out, stats)
			return nil
		},
	}
}
