package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fonoteca/internal/domain"
)

// stubReader serves a mutable collection to the engine
type stubReader struct {
	mu     sync.Mutex
	assets []domain.Asset
	err    error
	calls  int
}

func (r *stubReader) List(ctx context.Context) ([]domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Asset, len(r.assets))
	copy(out, r.assets)
	return out, nil
}

func (r *stubReader) set(assets []domain.Asset, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = assets
	r.err = err
}

// stubSearcher returns canned results and records the last request
type stubSearcher struct {
	mu      sync.Mutex
	results []domain.Asset
	err     error
	last    domain.SearchParams
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, params domain.SearchParams) ([]domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = params
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

var errUnreachable = errors.New("connection refused")

func asset(id int64, t domain.AssetType, duration int, tags ...string) domain.Asset {
	return domain.Asset{
		ID:       id,
		Type:     t,
		Tags:     tags,
		Duration: duration,
		Path:     fmt.Sprintf("/data/audio/%d.wav", id),
	}
}

// numbered returns n ambient assets with IDs 1..n
func numbered(n int) []domain.Asset {
	out := make([]domain.Asset, n)
	for i := range out {
		out[i] = asset(int64(i+1), domain.AssetTypeAmbient, 120)
	}
	return out
}

func ids(assets []domain.Asset) []int64 {
	out := make([]int64, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}
