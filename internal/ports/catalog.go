package ports

import (
	"context"

	"fonoteca/internal/domain"
)

// CatalogReader fetches the full asset collection
type CatalogReader interface {
	List(ctx context.Context) ([]domain.Asset, error)
}

// Searcher runs a ranked free-text search narrowed by structural filters.
// Results are ordered by relevance and hold at most params.Limit assets.
type Searcher interface {
	Search(ctx context.Context, params domain.SearchParams) ([]domain.Asset, error)
}

// CatalogWriter mutates the remote collection. Every method returns only
// after the source of truth has accepted the change.
type CatalogWriter interface {
	// Create registers the audio file at asset.Path as a new asset
	Create(ctx context.Context, asset domain.NewAsset) (domain.Asset, error)

	// Update replaces type, description and tags of an existing asset
	Update(ctx context.Context, id int64, update domain.AssetUpdate) (domain.Asset, error)

	// Delete removes an asset
	Delete(ctx context.Context, id int64) error
}

// CatalogAPI is the full remote catalog collaborator
type CatalogAPI interface {
	CatalogReader
	Searcher
	CatalogWriter

	// Get fetches a single asset
	Get(ctx context.Context, id int64) (domain.Asset, error)

	// Stats returns collection statistics, for display only
	Stats(ctx context.Context) (domain.Stats, error)

	// Types lists the asset types the backend accepts
	Types(ctx context.Context) ([]string, error)

	// Health checks that the backend is reachable
	Health(ctx context.Context) error
}
