package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// StatsResult holds collection statistics and the accepted asset types
type StatsResult struct {
	Stats domain.Stats
	Types []string
}

// StatsCommand fetches statistics and types concurrently
type StatsCommand struct {
	api ports.CatalogAPI
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(api ports.CatalogAPI) *StatsCommand {
	return &StatsCommand{api: api}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	if c.api == nil {
		return nil, application.ErrNoBackend
	}

	var res StatsResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.api.Stats(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}
		res.Stats = stats
		return nil
	})
	g.Go(func() error {
		types, err := c.api.Types(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch types: %w", err)
		}
		res.Types = types
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCommand fetches a single asset
type GetCommand struct {
	api ports.CatalogAPI
	ID  int64
}

// NewGetCommand creates a new GetCommand
func NewGetCommand(api ports.CatalogAPI, id int64) *GetCommand {
	return &GetCommand{api: api, ID: id}
}

// Execute runs the get command
func (c *GetCommand) Execute(ctx context.Context) (domain.Asset, error) {
	if err := application.ValidateID(c.ID); err != nil {
		return domain.Asset{}, err
	}
	return c.api.Get(ctx, c.ID)
}

// HealthCommand checks that the backend is reachable
type HealthCommand struct {
	api ports.CatalogAPI
}

// NewHealthCommand creates a new HealthCommand
func NewHealthCommand(api ports.CatalogAPI) *HealthCommand {
	return &HealthCommand{api: api}
}

// Execute runs the health check
func (c *HealthCommand) Execute(ctx context.Context) error {
	if c.api == nil {
		return application.ErrNoBackend
	}
	if err := c.api.Health(ctx); err != nil {
		return fmt.Errorf("backend unhealthy: %w", err)
	}
	return nil
}
