package cmd

import (
	"github.com/spf13/cobra"

	"fonoteca/internal/adapters/player"
	"fonoteca/internal/application/commands"
)

func newPlayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Preview an asset in an audio player",
		Long: `Preview an asset in the player set by $FONOTECA_PLAYER or the player
config key, falling back to the first of mpv, ffplay, afplay, paplay and
xdg-open found on PATH.

Examples:
  fonoteca-cli play 42
  FONOTECA_PLAYER="mpv --no-video" fonoteca-cli play 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			asset, err := commands.NewGetCommand(c.backend.API, id).Execute(c.ctx(cmd))
			if err != nil {
				return err
			}

			c.log.Debug().Int64("id", asset.ID).Str("path", asset.Path).Msg("playing asset")
			return player.NewOpener(c.cfg.Player).Play(asset.Path)
		},
	}
}
