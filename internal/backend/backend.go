// Package backend wires the configured catalog collaborator and the view
// engine in front of it.
package backend

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"fonoteca/internal/adapters/filesystem"
	"fonoteca/internal/adapters/httpapi"
	"fonoteca/internal/adapters/sqlite"
	"fonoteca/internal/catalog"
	"fonoteca/internal/config"
	"fonoteca/internal/ports"
)

// Backend is an opened catalog plus the engine reconciling its views
type Backend struct {
	API    ports.CatalogAPI
	Engine *catalog.Engine

	// Store is set for the sqlite backend only
	Store *sqlite.Store

	closer io.Closer
}

// Open connects to the backend cfg selects. Nothing is fetched yet; call
// Engine.Load to populate the cache.
func Open(cfg config.Config, log zerolog.Logger) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{}
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.DBPath,
			sqlite.WithMediaStore(filesystem.NewMediaStore(cfg.MediaDir)),
			sqlite.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog database: %w", err)
		}
		b.API = store
		b.Store = store
		b.closer = store
	default:
		b.API = NewHTTPClient(cfg, log)
	}

	b.Engine = catalog.New(b.API, b.API,
		catalog.WithPageSize(cfg.PageSize),
		catalog.WithSearchLimit(cfg.SearchLimit),
		catalog.WithLogger(log),
	)
	log.Debug().Str("backend", cfg.Backend).Msg("backend opened")
	return b, nil
}

// NewHTTPClient builds the remote catalog client from cfg
func NewHTTPClient(cfg config.Config, log zerolog.Logger) *httpapi.Client {
	return httpapi.New(cfg.APIURL,
		httpapi.WithLogger(log),
		httpapi.WithTimeout(cfg.Timeout),
		httpapi.WithRetryMax(cfg.RetryMax),
	)
}

// Close releases the local database, if one is open
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
