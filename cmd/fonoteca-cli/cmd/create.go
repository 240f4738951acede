package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"fonoteca/internal/application/commands"
	"fonoteca/internal/domain"
)

func newCreateCmd(c *cli) *cobra.Command {
	var (
		assetType   string
		description string
		tags        []string
		duration    int
	)

	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Register an audio file as a new asset",
		Long: `Register an audio file as a new asset.

When --type is omitted it is guessed from the file name. The description
defaults to the file name without extension. Durations are checked per
type: action and transition effects run between 1 and 10 seconds, mood cues
longer than 30 seconds, ambient beds and music longer than 60 seconds.

Examples:
  fonoteca-cli create ~/sfx/door_slam.wav --duration 2
  fonoteca-cli create ~/beds/heavy_rain.flac -t ambient --tags rain,storm -d 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if strings.TrimSpace(assetType) == "" {
				assetType = domain.SuggestType(path).String()
			}

			createCmd := commands.NewCreateCommand(c.backend.API, nil, path, assetType)
			createCmd.Description = description
			createCmd.Tags = tags
			createCmd.Duration = duration

			result, err := createCmd.Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printMessage(result.Message, result.Warning, &result.Asset)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&assetType, "type", "t", "", "asset type ("+domain.JoinTypes(", ")+")")
	flags.StringVar(&description, "description", "", "description (default from the file name)")
	flags.StringSliceVar(&tags, "tags", nil, "comma separated tags")
	flags.IntVarP(&duration, "duration", "d", 0, "duration in seconds (0 lets the server detect it)")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		assetType   string
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change type, description or tags of an asset",
		Long: `Change type, description or tags of an asset. Fields without a flag
keep their current value; --tags "" clears the tags.

Examples:
  fonoteca-cli update 42 --description "Heavy rain on a tin roof"
  fonoteca-cli update 42 --type mood --tags dark,strings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			updateCmd := commands.NewUpdateCommand(c.backend.API, nil, id)
			flags := cmd.Flags()
			if flags.Changed("type") {
				updateCmd.Type = &assetType
			}
			if flags.Changed("description") {
				updateCmd.Description = &description
			}
			if flags.Changed("tags") {
				cleared := make([]string, 0, len(tags))
				for _, t := range tags {
					if strings.TrimSpace(t) != "" {
						cleared = append(cleared, t)
					}
				}
				updateCmd.Tags = &cleared
			}

			result, err := updateCmd.Execute(c.ctx(cmd))
			if err != nil {
				return err
			}
			return c.printMessage(result.Message, result.Warning, &result.Asset)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&assetType, "type", "t", "", "new asset type")
	flags.StringVar(&description, "description", "", "new description")
	flags.StringSliceVar(&tags, "tags", nil, "new comma separated tags")
	return cmd
}
