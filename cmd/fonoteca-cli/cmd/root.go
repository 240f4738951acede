package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fonoteca/internal/backend"
	"fonoteca/internal/config"
	"fonoteca/internal/logging"
)

// noBackend marks commands that open their own collaborators
const noBackend = "no-backend"

// cli holds the state shared by every command of one invocation
type cli struct {
	configPath  string
	backendName string
	apiURL      string
	dbPath      string
	logLevel    string
	jsonOutput  bool

	cfg     config.Config
	log     *logging.Logger
	backend *backend.Backend
	out     io.Writer
}

// NewRootCmd builds the command tree writing results to out
func NewRootCmd(out io.Writer) (*cobra.Command, func()) {
	c := &cli{out: out, log: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:   "fonoteca-cli",
		Short: "CLI for browsing and managing an audio asset catalog",
		Long: `fonoteca-cli is a command-line interface for an audio asset catalog
of music, ambient beds, mood cues, action effects and transitions.

It provides commands to list, search, create, update, delete and play
assets, either against the remote catalog API or a local SQLite mirror.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.setup(cmd)
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "path to the config file")
	flags.StringVarP(&c.backendName, "backend", "b", "", "catalog backend: http or sqlite")
	flags.StringVar(&c.apiURL, "api-url", "", "remote catalog URL")
	flags.StringVar(&c.dbPath, "db", "", "path to the local catalog database")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&c.jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newListCmd(c),
		newSearchCmd(c),
		newShowCmd(c),
		newCreateCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newStatsCmd(c),
		newTypesCmd(c),
		newHealthCmd(c),
		newMirrorCmd(c),
		newPlayCmd(c),
	)

	return rootCmd, c.close
}

// Execute runs the root command
func Execute() {
	rootCmd, cleanup := NewRootCmd(os.Stdout)
	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and opens the backend
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = strings.ToLower(strings.TrimSpace(c.backendName))
	}
	if flags.Changed("api-url") {
		cfg.APIURL = strings.TrimRight(c.apiURL, "/")
	}
	if flags.Changed("db") {
		cfg.DBPath = c.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	log, err := logging.NewCLI(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	c.log = log

	if cmd.Annotations[noBackend] != "" {
		return nil
	}
	b, err := backend.Open(cfg, log.Logger)
	if err != nil {
		return err
	}
	c.backend = b
	return nil
}

func (c *cli) close() {
	if c.backend != nil {
		if err := c.backend.Close(); err != nil {
			c.log.Warn().Err(err).Msg("failed to close backend")
		}
		c.backend = nil
	}
	c.log.Close()
}

func (c *cli) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// warn prints a non-fatal problem on stderr
func (c *cli) warn(msg string) {
	if msg != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
}
