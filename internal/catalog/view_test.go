package catalog

import (
	"slices"
	"testing"

	"fonoteca/internal/domain"
)

func newTestCompositor(items []domain.Asset) (*Compositor, *Cache, *Paginator) {
	cache := NewCache()
	cache.Replace(items)
	pager := NewPaginator(10)
	return NewCompositor(cache, pager), cache, pager
}

func TestCompositor_Transitions(t *testing.T) {
	items := numbered(25)
	items[0].Type = domain.AssetTypeMusic
	items[1].Type = domain.AssetTypeMusic

	c, _, pager := newTestCompositor(items)

	if c.State().Kind() != KindUnfiltered {
		t.Fatalf("initial state = %s, want unfiltered", c.State().Kind())
	}
	if len(c.View()) != 25 {
		t.Fatalf("initial view has %d items, want 25", len(c.View()))
	}

	pager.GoToPage(3)
	c.ApplyStructural(domain.FilterCriteria{Type: domain.AssetTypeMusic, Query: "ignored"})
	st, ok := c.State().(LocallyFiltered)
	if !ok {
		t.Fatalf("state = %T, want LocallyFiltered", c.State())
	}
	if st.Criteria.Query != "" {
		t.Error("structural criteria kept the free-text query")
	}
	if !slices.Equal(ids(c.View()), []int64{1, 2}) {
		t.Errorf("view = %v, want [1 2]", ids(c.View()))
	}
	if pager.CurrentPage() != 1 {
		t.Errorf("page = %d, want 1 after filter", pager.CurrentPage())
	}

	results := []domain.Asset{items[9], items[4]}
	c.ApplySearchResults("rain", domain.FilterCriteria{}, results)
	rs, ok := c.State().(RemotelySearched)
	if !ok || rs.Query != "rain" {
		t.Fatalf("state = %#v, want RemotelySearched rain", c.State())
	}
	if !slices.Equal(ids(c.View()), []int64{10, 5}) {
		t.Errorf("search view = %v, want server order [10 5]", ids(c.View()))
	}

	c.Clear()
	if c.State().Kind() != KindUnfiltered || len(c.View()) != 25 {
		t.Errorf("Clear left state %s with %d items", c.State(), len(c.View()))
	}
	if !c.Criteria().IsEmpty() {
		t.Error("Clear kept criteria")
	}
}

func TestCompositor_EmptyCriteriaIsStillLocallyFiltered(t *testing.T) {
	c, _, _ := newTestCompositor(numbered(3))
	c.ApplyStructural(domain.FilterCriteria{})

	if c.State().Kind() != KindLocallyFiltered {
		t.Errorf("state = %s, want filtered", c.State().Kind())
	}
	if len(c.View()) != 3 {
		t.Errorf("view has %d items, want 3", len(c.View()))
	}
}

func TestCompositor_SearchFailureFallsBackToLocal(t *testing.T) {
	items := numbered(6)
	items[2].Tags = []string{"night"}
	c, cache, _ := newTestCompositor(items)

	structural := domain.FilterCriteria{Tag: "night"}
	c.ApplySearchFailure(structural)

	if c.State().Kind() != KindLocallyFiltered {
		t.Fatalf("state = %s, want filtered", c.State().Kind())
	}
	want := ids(Filter(cache.Current(), structural))
	if !slices.Equal(ids(c.View()), want) {
		t.Errorf("fallback view = %v, want %v", ids(c.View()), want)
	}
}

func TestCompositor_RederiveDropsSearch(t *testing.T) {
	items := numbered(5)
	c, cache, _ := newTestCompositor(items)

	structural := domain.FilterCriteria{MaxDuration: domain.IntPtr(200)}
	c.ApplySearchResults("storm", structural, []domain.Asset{items[0], items[1], items[2]})

	cache.Replace(numbered(4))
	c.Rederive()

	if c.State().Kind() != KindLocallyFiltered {
		t.Fatalf("state = %s, want filtered", c.State().Kind())
	}
	if len(c.View()) != 4 {
		t.Errorf("view has %d items, want 4", len(c.View()))
	}
	if !c.Criteria().Equal(structural) {
		t.Errorf("criteria = %s, want %s", c.Criteria(), structural)
	}
}

func TestCompositor_RederiveKeepsUnfiltered(t *testing.T) {
	c, cache, _ := newTestCompositor(numbered(2))
	cache.Replace(numbered(7))
	c.Rederive()

	if c.State().Kind() != KindUnfiltered || len(c.View()) != 7 {
		t.Errorf("got %s with %d items, want unfiltered with 7", c.State(), len(c.View()))
	}
}

func TestCompositor_RefreshLocal(t *testing.T) {
	c, cache, pager := newTestCompositor(numbered(30))
	pager.GoToPage(2)

	cache.Replace(numbered(31))
	if !c.RefreshLocal() {
		t.Fatal("RefreshLocal on unfiltered view returned false")
	}
	if pager.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2 kept", pager.CurrentPage())
	}

	c.ApplySearchResults("wind", domain.FilterCriteria{}, numbered(3))
	cache.Replace(numbered(1))
	if c.RefreshLocal() {
		t.Error("RefreshLocal replaced a search result")
	}
	if len(c.View()) != 3 {
		t.Errorf("search view has %d items, want 3", len(c.View()))
	}
}
