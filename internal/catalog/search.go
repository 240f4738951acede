package catalog

import (
	"context"

	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// RemoteSearch delegates free-text queries to the remote collaborator.
// Each call is one request/response exchange: no retries, no cancellation
// beyond the caller's context.
type RemoteSearch struct {
	searcher ports.Searcher
	limit    int
}

// NewRemoteSearch creates a remote search adapter. A limit <= 0 uses
// domain.DefaultSearchLimit.
func NewRemoteSearch(searcher ports.Searcher, limit int) *RemoteSearch {
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	return &RemoteSearch{searcher: searcher, limit: limit}
}

// Limit returns the result cap sent with every request
func (r *RemoteSearch) Limit() int {
	return r.limit
}

// Search runs query narrowed by the structural filters. Results keep the
// server's ranking and are capped at the configured limit.
func (r *RemoteSearch) Search(ctx context.Context, query string, structural domain.FilterCriteria) ([]domain.Asset, error) {
	if r == nil || r.searcher == nil {
		return nil, &SearchError{Query: query, Err: ErrNoSearcher}
	}

	params := structural.SearchParams(query, r.limit)
	results, err := r.searcher.Search(ctx, params)
	if err != nil {
		return nil, &SearchError{Query: params.Query, Err: err}
	}

	if len(results) > params.Limit {
		results = results[:params.Limit]
	}
	out := make([]domain.Asset, len(results))
	for i, a := range results {
		out[i] = a.Clone()
	}
	return out, nil
}
