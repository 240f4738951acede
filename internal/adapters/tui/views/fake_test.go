package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fonoteca/internal/application"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// fakeCatalog is an in-memory catalog backend
type fakeCatalog struct {
	mu        sync.Mutex
	assets    []domain.Asset
	results   []domain.Asset
	searchErr error
	nextID    int64
}

func newFakeCatalog(assets ...domain.Asset) *fakeCatalog {
	return &fakeCatalog{assets: assets, nextID: 100}
}

func manyAssets(n int) []domain.Asset {
	out := make([]domain.Asset, n)
	for i := range out {
		out[i] = domain.Asset{
			ID:          int64(i + 1),
			Type:        domain.AssetTypeAmbient,
			Description: fmt.Sprintf("asset %d", i+1),
			Duration:    120,
			Path:        fmt.Sprintf("/media/asset_%d.wav", i+1),
		}
	}
	return out
}

func (f *fakeCatalog) List(context.Context) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.assets), nil
}

func (f *fakeCatalog) Search(context.Context, domain.SearchParams) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return slices.Clone(f.results), nil
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Asset{}, &application.NotFoundError{ID: id}
}

func (f *fakeCatalog) Create(_ context.Context, n domain.NewAsset) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := domain.Asset{ID: f.nextID, Type: n.Type, Description: n.Description, Tags: n.Tags, Duration: n.Duration, Path: n.Path}
	f.nextID++
	f.assets = append(f.assets, a)
	return a, nil
}

func (f *fakeCatalog) Update(_ context.Context, id int64, u domain.AssetUpdate) (domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.assets {
		if a.ID == id {
			a.Type, a.Description, a.Tags = u.Type, u.Description, u.Tags
			f.assets[i] = a
			return a, nil
		}
	}
	return domain.Asset{}, &application.NotFoundError{ID: id}
}

func (f *fakeCatalog) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.assets {
		if a.ID == id {
			f.assets = slices.Delete(f.assets, i, i+1)
			return nil
		}
	}
	return &application.NotFoundError{ID: id}
}

func (f *fakeCatalog) Stats(context.Context) (domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int{}
	for _, a := range f.assets {
		counts[string(a.Type)]++
	}
	return domain.Stats{TotalCount: len(f.assets), TypeCounts: counts}, nil
}

func (f *fakeCatalog) Types(context.Context) ([]string, error) {
	return strings.Split(domain.JoinTypes(","), ","), nil
}

func (f *fakeCatalog) Health(context.Context) error { return nil }

var errUnreachable = errors.New("dial tcp: connection refused")

// runes builds the key message for typed characters
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and every command it batches, returning the messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// loadedBrowser returns a browser whose initial reload has been applied
func loadedBrowser(t *testing.T, api *fakeCatalog, opts ...catalog.Option) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(context.Background(), catalog.New(api, api, opts...))
	for _, msg := range collect(m.Init()) {
		m.Update(msg)
	}
	if !m.snap.Loaded {
		t.Fatal("browser not loaded")
	}
	return m
}
