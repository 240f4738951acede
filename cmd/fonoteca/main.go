package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/adapters/filesystem"
	"fonoteca/internal/adapters/player"
	"fonoteca/internal/adapters/tui"
	"fonoteca/internal/backend"
	"fonoteca/internal/config"
	"fonoteca/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	// the terminal belongs to the TUI, so logs only go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: logFile})
	if err != nil {
		return err
	}
	defer log.Close()

	b, err := backend.Open(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewApp(ctx, b.Engine, b.API, player.NewOpener(cfg.Player))

	if b.Store != nil {
		w, err := filesystem.NewWatcher(b.Store.Path(), 0, log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("catalog changes made elsewhere will not show up")
		} else {
			defer w.Close()
			app.WatchChanges(w.Changes())
		}
	}

	log.Info().Str("backend", cfg.Backend).Msg("starting fonoteca")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
