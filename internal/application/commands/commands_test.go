package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
)

// fakeAPI is an in-memory catalog backend
type fakeAPI struct {
	mu        sync.Mutex
	assets    []domain.Asset
	nextID    int64
	searchErr error
	listErr   error
	writeErr  error
	results   []domain.Asset
	lastQuery domain.SearchParams
	updates   []domain.AssetUpdate
}

func newFakeAPI(assets ...domain.Asset) *fakeAPI {
	f := &fakeAPI{assets: assets, nextID: 100}
	return f
}

func (f *fakeAPI) List(ctx context.Context) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.assets), nil
}

func (f *fakeAPI) Get(ctx context.Context, id int64) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Asset{}, &application.NotFoundError{ID: id}
}

func (f *fakeAPI) Search(ctx context.Context, params domain.SearchParams) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = params
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeAPI) Create(ctx context.Context, n domain.NewAsset) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Asset{}, f.writeErr
	}
	a := domain.Asset{
		ID:          f.nextID,
		Type:        n.Type,
		Description: n.Description,
		Tags:        n.Tags,
		Duration:    n.Duration,
		Path:        n.Path,
	}
	f.nextID++
	f.assets = append(f.assets, a)
	return a, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int64, u domain.AssetUpdate) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Asset{}, f.writeErr
	}
	f.updates = append(f.updates, u)
	for i, a := range f.assets {
		if a.ID == id {
			a.Type, a.Description, a.Tags = u.Type, u.Description, u.Tags
			f.assets[i] = a
			return a, nil
		}
	}
	return domain.Asset{}, &application.NotFoundError{ID: id}
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	for i, a := range f.assets {
		if a.ID == id {
			f.assets = slices.Delete(f.assets, i, i+1)
			return nil
		}
	}
	return &application.NotFoundError{ID: id}
}

func (f *fakeAPI) Stats(ctx context.Context) (domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int{}
	for _, a := range f.assets {
		counts[string(a.Type)]++
	}
	return domain.Stats{CollectionName: "test", TotalCount: len(f.assets), TypeCounts: counts}, nil
}

func (f *fakeAPI) Types(ctx context.Context) ([]string, error) {
	return strings.Split(domain.JoinTypes(","), ","), nil
}

func (f *fakeAPI) Health(ctx context.Context) error {
	return f.listErr
}

// recordingObserver counts mutation notifications
type recordingObserver struct {
	calls int
	err   error
}

func (o *recordingObserver) OnMutationCompleted(ctx context.Context) error {
	o.calls++
	return o.err
}

var errUnreachable = errors.New("connection refused")

func sample(id int64, t domain.AssetType, duration int, tags ...string) domain.Asset {
	return domain.Asset{
		ID:          id,
		Type:        t,
		Description: fmt.Sprintf("asset %d", id),
		Tags:        tags,
		Duration:    duration,
		Path:        fmt.Sprintf("/data/audio/%d.wav", id),
	}
}

func idsOf(assets []domain.Asset) []int64 {
	out := make([]int64, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}
