package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "fonoteca/internal/adapters/mcp"
	"fonoteca/internal/backend"
	"fonoteca/internal/config"
	"fonoteca/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	readOnly := flag.Bool("read-only", false, "register only the tools that do not modify the catalog")
	flag.Parse()

	if err := run(*configFlag, *readOnly); err != nil {
		fmt.Fprintf(os.Stderr, "fonoteca-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, readOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: os.Stderr})
	if err != nil {
		return err
	}
	defer log.Close()

	b, err := backend.Open(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer b.Close()

	mcpServer := server.NewMCPServer(
		"fonoteca-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check: returns pong when the catalog backend is reachable"),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := b.API.Health(ctx); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText("pong"), nil
		},
	)

	tools := mcpadapter.NewTools(b.API, b.Engine)
	tools.RegisterReadTools(mcpServer)
	if !readOnly {
		tools.RegisterWriteTools(mcpServer)
	}

	log.Info().Str("backend", cfg.Backend).Bool("read_only", readOnly).Msg("serving MCP on stdio")
	return server.ServeStdio(mcpServer)
}
