package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// Engine maintains the single current view of the asset collection. It is
// created by the caller and passed to whatever issues commands; there is no
// package level state.
//
// Synchronous commands are serialized by a mutex. The two async paths
// (remote search and collection reload) are split into Begin/Exec/Apply so
// the lock is never held across a remote call. Each Begin issues a
// generation token and Apply discards responses whose token is no longer
// the latest, returning ErrSuperseded.
type Engine struct {
	mu sync.Mutex

	reader ports.CatalogReader
	search *RemoteSearch
	log    zerolog.Logger

	cache      *Cache
	pager      *Paginator
	compositor *Compositor

	viewGen   uint64
	reloadGen uint64
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	pageSize    int
	searchLimit int
	log         zerolog.Logger
}

// WithPageSize sets the initial number of items per page
func WithPageSize(n int) Option {
	return func(o *engineOptions) { o.pageSize = n }
}

// WithSearchLimit caps remote search results
func WithSearchLimit(n int) Option {
	return func(o *engineOptions) { o.searchLimit = n }
}

// WithLogger sets the engine logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *engineOptions) { o.log = l }
}

// New creates an engine reading the collection from reader and running
// free-text queries through searcher. searcher may be nil, in which case
// every search falls back to local filtering.
func New(reader ports.CatalogReader, searcher ports.Searcher, opts ...Option) *Engine {
	o := engineOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	cache := NewCache()
	pager := NewPaginator(o.pageSize)
	e := &Engine{
		reader:     reader,
		log:        o.log.With().Str("component", "catalog").Logger(),
		cache:      cache,
		pager:      pager,
		compositor: NewCompositor(cache, pager),
	}
	if searcher != nil {
		e.search = NewRemoteSearch(searcher, o.searchLimit)
	}
	return e
}

// --- synchronous commands ---

// SetStructuralFilter filters the cached collection locally. Any active
// search result is discarded and any in-flight search is superseded.
func (e *Engine) SetStructuralFilter(criteria domain.FilterCriteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.viewGen++
	e.compositor.ApplyStructural(criteria)
	e.log.Debug().
		Str("criteria", criteria.Structural().String()).
		Int("matches", len(e.compositor.View())).
		Msg("structural filter applied")
	return nil
}

// ClearFilters resets all criteria and shows the whole collection
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.viewGen++
	e.compositor.Clear()
	e.log.Debug().Int("items", len(e.compositor.View())).Msg("filters cleared")
}

// GoToPage moves to page n; out of range pages leave the state unchanged
func (e *Engine) GoToPage(n int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.GoToPage(n)
}

// NextPage moves to the next page, if any
func (e *Engine) NextPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.NextPage()
}

// PrevPage moves to the previous page, if any
func (e *Engine) PrevPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.PrevPage()
}

// ChangePageSize sets the number of items per page and returns to page 1
func (e *Engine) ChangePageSize(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.ChangePageSize(n)
}

// --- remote search ---

// SearchRequest is an issued, not yet applied, remote search
type SearchRequest struct {
	Generation uint64
	Query      string
	Structural domain.FilterCriteria
}

// SearchResult is the outcome of executing a SearchRequest
type SearchResult struct {
	Request SearchRequest
	Assets  []domain.Asset
	Err     error
}

// BeginSearch issues a search for query using the current structural
// criteria. A blank query is handled synchronously as a structural filter
// change and BeginSearch returns false: there is nothing to execute.
func (e *Engine) BeginSearch(query string) (SearchRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.viewGen++
	query = strings.TrimSpace(query)
	if query == "" {
		e.compositor.ApplyStructural(e.compositor.criteria)
		return SearchRequest{}, false
	}

	req := SearchRequest{
		Generation: e.viewGen,
		Query:      query,
		Structural: e.compositor.Criteria(),
	}
	e.log.Debug().Uint64("gen", req.Generation).Str("query", query).Msg("search issued")
	return req, true
}

// ExecSearch performs the remote call for req. It does not touch engine
// state and may run on any goroutine.
func (e *Engine) ExecSearch(ctx context.Context, req SearchRequest) SearchResult {
	assets, err := e.search.Search(ctx, req.Query, req.Structural)
	return SearchResult{Request: req, Assets: assets, Err: err}
}

// ApplySearch installs a search result if it is still the latest request.
// A failed search degrades to the local filter view and the error is
// returned so the caller can report it.
func (e *Engine) ApplySearch(res SearchResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := res.Request
	if req.Generation != e.viewGen {
		e.log.Debug().
			Uint64("gen", req.Generation).
			Uint64("latest", e.viewGen).
			Str("query", req.Query).
			Msg("discarding stale search response")
		return ErrSuperseded
	}

	if res.Err != nil {
		e.compositor.ApplySearchFailure(req.Structural)
		e.log.Warn().Err(res.Err).
			Str("query", req.Query).
			Int("fallback_matches", len(e.compositor.View())).
			Msg("search failed, showing local filter results")
		return res.Err
	}

	e.compositor.ApplySearchResults(req.Query, req.Structural, res.Assets)
	e.log.Debug().Str("query", req.Query).Int("results", len(res.Assets)).Msg("search applied")
	return nil
}

// RunSearch searches the remote catalog for query and blocks until the
// result is applied. An empty query behaves like SetStructuralFilter with
// the current criteria.
func (e *Engine) RunSearch(ctx context.Context, query string) error {
	req, remote := e.BeginSearch(query)
	if !remote {
		return nil
	}
	return e.ApplySearch(e.ExecSearch(ctx, req))
}

// --- collection reload ---

// ReloadRequest is an issued, not yet applied, collection reload
type ReloadRequest struct {
	Generation     uint64
	ViewGeneration uint64
}

// ReloadResult is the outcome of executing a ReloadRequest
type ReloadResult struct {
	Request ReloadRequest
	Assets  []domain.Asset
	Err     error
}

// BeginReload issues a reload of the whole collection
func (e *Engine) BeginReload() ReloadRequest {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reloadGen++
	return ReloadRequest{Generation: e.reloadGen, ViewGeneration: e.viewGen}
}

// ExecReload fetches the collection for req. It does not touch engine state.
func (e *Engine) ExecReload(ctx context.Context, req ReloadRequest) ReloadResult {
	if e.reader == nil {
		return ReloadResult{Request: req, Err: fmt.Errorf("reload catalog: no source configured")}
	}
	assets, err := e.reader.List(ctx)
	if err != nil {
		err = fmt.Errorf("reload catalog: %w", err)
	}
	return ReloadResult{Request: req, Assets: assets, Err: err}
}

// ApplyReload replaces the cache with a fetched collection and re-derives
// the view by reapplying the last structural criteria. A failed reload
// leaves the last-known-good cache and view in place.
//
// If the user changed the view after the reload was issued, that newer view
// keeps its identity: a local view is recomputed against the new cache in
// place, a remote search result is left alone.
func (e *Engine) ApplyReload(res ReloadResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := res.Request
	if req.Generation != e.reloadGen {
		e.log.Debug().Uint64("gen", req.Generation).Uint64("latest", e.reloadGen).Msg("discarding stale reload")
		return ErrSuperseded
	}
	if res.Err != nil {
		e.log.Error().Err(res.Err).Int("cached", e.cache.Len()).Msg("reload failed, keeping cached collection")
		return res.Err
	}

	e.cache.Replace(res.Assets)

	if req.ViewGeneration == e.viewGen {
		e.viewGen++
		e.compositor.Rederive()
	} else {
		e.compositor.RefreshLocal()
	}

	e.log.Debug().
		Int("items", e.cache.Len()).
		Str("view", e.compositor.State().String()).
		Msg("collection reloaded")
	return nil
}

// Refresh reloads the collection and re-derives the view
func (e *Engine) Refresh(ctx context.Context) error {
	return e.ApplyReload(e.ExecReload(ctx, e.BeginReload()))
}

// Load performs the initial fetch of the collection
func (e *Engine) Load(ctx context.Context) error {
	return e.Refresh(ctx)
}

// OnMutationCompleted reloads the collection after a create, update or
// delete and reapplies only the last structural criteria.
//
// An active search result is NOT replayed: remote search results are
// one-shot snapshots and a mutation always lands the user on the local
// filter view. This is intended behavior.
func (e *Engine) OnMutationCompleted(ctx context.Context) error {
	return e.Refresh(ctx)
}

// --- read side ---

// Snapshot is a consistent copy of everything a renderer needs
type Snapshot struct {
	State      ViewState
	Criteria   domain.FilterCriteria
	Page       []domain.Asset // current page of the view
	Pagination PaginationState
	Window     []PageMarker
	CacheSize  int
	Loaded     bool
}

// Snapshot returns a copy of the visible state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		State:      e.compositor.State(),
		Criteria:   e.compositor.Criteria(),
		Page:       e.currentPageLocked(),
		Pagination: e.pager.State(),
		Window:     e.pager.PageWindow(),
		CacheSize:  e.cache.Len(),
		Loaded:     e.cache.Loaded(),
	}
}

// CurrentView returns the current page of the view
func (e *Engine) CurrentView() []domain.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPageLocked()
}

// FullView returns the whole current view, before pagination
func (e *Engine) FullView() []domain.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.compositor.View())
}

// State returns the current view state
func (e *Engine) State() ViewState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.compositor.State()
}

// Criteria returns the last structural criteria
func (e *Engine) Criteria() domain.FilterCriteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.compositor.Criteria()
}

// PaginationState returns the current pagination state
func (e *Engine) PaginationState() PaginationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.State()
}

// PageWindow returns the page navigation markers for the current view
func (e *Engine) PageWindow() []PageMarker {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pager.PageWindow()
}

// Collection returns a copy of the cached collection
func (e *Engine) Collection() []domain.Asset {
	return e.cache.Snapshot()
}

func (e *Engine) currentPageLocked() []domain.Asset {
	start, end := e.pager.Bounds()
	return slices.Clone(e.compositor.View()[start:end])
}
