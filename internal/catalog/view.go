package catalog

import (
	"fmt"

	"fonoteca/internal/domain"
)

// ViewKind identifies the variant of a ViewState
type ViewKind int

const (
	KindUnfiltered ViewKind = iota
	KindLocallyFiltered
	KindRemotelySearched
)

func (k ViewKind) String() string {
	switch k {
	case KindUnfiltered:
		return "unfiltered"
	case KindLocallyFiltered:
		return "filtered"
	case KindRemotelySearched:
		return "search"
	default:
		return "unknown"
	}
}

// ViewState tells where the current view came from. It is one of
// Unfiltered, LocallyFiltered or RemotelySearched.
type ViewState interface {
	Kind() ViewKind
	String() string
	isViewState()
}

// Unfiltered: the view is the whole cached collection
type Unfiltered struct{}

// LocallyFiltered: the view is the cache narrowed by structural criteria
type LocallyFiltered struct {
	Criteria domain.FilterCriteria
}

// RemotelySearched: the view is the server-ranked result of a free-text
// query narrowed by structural criteria
type RemotelySearched struct {
	Query      string
	Structural domain.FilterCriteria
}

func (Unfiltered) Kind() ViewKind       { return KindUnfiltered }
func (LocallyFiltered) Kind() ViewKind  { return KindLocallyFiltered }
func (RemotelySearched) Kind() ViewKind { return KindRemotelySearched }

func (Unfiltered) String() string { return "all assets" }

func (s LocallyFiltered) String() string {
	return "filtered: " + s.Criteria.String()
}

func (s RemotelySearched) String() string {
	if s.Structural.IsEmpty() {
		return fmt.Sprintf("search %q", s.Query)
	}
	return fmt.Sprintf("search %q, %s", s.Query, s.Structural)
}

func (Unfiltered) isViewState()       {}
func (LocallyFiltered) isViewState()  {}
func (RemotelySearched) isViewState() {}

// Compositor holds the current view and decides which source is
// authoritative for it. Every transition that replaces the view notifies
// the paginator.
type Compositor struct {
	cache    *Cache
	pager    *Paginator
	state    ViewState
	criteria domain.FilterCriteria // last structural criteria
	view     []domain.Asset
}

// NewCompositor creates a compositor showing the whole cache
func NewCompositor(cache *Cache, pager *Paginator) *Compositor {
	c := &Compositor{
		cache: cache,
		pager: pager,
		state: Unfiltered{},
	}
	c.publish(cache.Current(), true)
	return c
}

// State returns the current view state
func (c *Compositor) State() ViewState {
	return c.state
}

// Criteria returns the last structural criteria
func (c *Compositor) Criteria() domain.FilterCriteria {
	return c.criteria.Clone()
}

// View returns the current view. The slice is shared and read-only.
func (c *Compositor) View() []domain.Asset {
	return c.view
}

// ApplyStructural recomputes the view from the latest cache snapshot with
// the given criteria. Any remote search result is discarded.
func (c *Compositor) ApplyStructural(criteria domain.FilterCriteria) {
	c.criteria = criteria.Structural().Clone()
	c.state = LocallyFiltered{Criteria: c.criteria.Clone()}
	c.publish(Filter(c.cache.Current(), c.criteria), true)
}

// ApplySearchResults makes a ranked remote result the current view
func (c *Compositor) ApplySearchResults(query string, structural domain.FilterCriteria, results []domain.Asset) {
	c.criteria = structural.Structural().Clone()
	c.state = RemotelySearched{Query: query, Structural: c.criteria.Clone()}
	c.publish(results, true)
}

// ApplySearchFailure falls back to the local filter view for the given
// structural criteria.
func (c *Compositor) ApplySearchFailure(structural domain.FilterCriteria) {
	c.ApplyStructural(structural)
}

// Clear drops all criteria and shows the whole cache
func (c *Compositor) Clear() {
	c.criteria = domain.FilterCriteria{}
	c.state = Unfiltered{}
	c.publish(c.cache.Current(), true)
}

// Rederive rebuilds the view after the cache was reloaded. Only the last
// structural criteria are reapplied: a remote search result is a one-shot
// snapshot and is never replayed.
func (c *Compositor) Rederive() {
	if _, ok := c.state.(Unfiltered); ok {
		c.publish(c.cache.Current(), true)
		return
	}
	c.ApplyStructural(c.criteria)
}

// RefreshLocal recomputes a local view against a newer cache without
// changing its identity: the paginator keeps its page unless it fell out of
// range. Remote search results are left untouched.
func (c *Compositor) RefreshLocal() bool {
	switch c.state.(type) {
	case Unfiltered:
		c.publish(c.cache.Current(), false)
	case LocallyFiltered:
		c.publish(Filter(c.cache.Current(), c.criteria), false)
	default:
		return false
	}
	return true
}

func (c *Compositor) publish(view []domain.Asset, identityChanged bool) {
	c.view = view
	c.pager.SetView(len(view), identityChanged)
}
