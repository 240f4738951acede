package catalog

import (
	"errors"
	"strings"
	"testing"

	"fonoteca/internal/domain"
)

func TestPaginator_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 10, 10},
		{7, 3, 3},
	}

	for _, tt := range tests {
		p := NewPaginator(tt.size)
		p.SetView(tt.total, true)
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(%d items, size %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
		if p.CurrentPage() != 1 {
			t.Errorf("expected page 1 after new view, got %d", p.CurrentPage())
		}
	}
}

func TestNewPaginator_DefaultSize(t *testing.T) {
	if got := NewPaginator(0).PageSize(); got != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", got, DefaultPageSize)
	}
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(10)
	p.SetView(25, true)

	if p.PrevPage() {
		t.Error("PrevPage on first page should be a no-op")
	}
	if !p.NextPage() || p.CurrentPage() != 2 {
		t.Fatalf("expected page 2, got %d", p.CurrentPage())
	}
	if !p.GoToPage(3) {
		t.Fatal("GoToPage(3) failed")
	}
	if p.NextPage() {
		t.Error("NextPage on last page should be a no-op")
	}

	for _, n := range []int{0, -1, 4, 99} {
		if p.GoToPage(n) {
			t.Errorf("GoToPage(%d) accepted out of range page", n)
		}
		if p.CurrentPage() != 3 {
			t.Errorf("GoToPage(%d) changed page to %d", n, p.CurrentPage())
		}
	}

	start, end := p.Bounds()
	if start != 20 || end != 25 {
		t.Errorf("Bounds() = %d,%d, want 20,25", start, end)
	}
}

func TestPaginator_EmptyView(t *testing.T) {
	p := NewPaginator(10)
	p.SetView(0, true)

	if p.CurrentPage() != 1 {
		t.Errorf("CurrentPage() = %d, want 1", p.CurrentPage())
	}
	if p.GoToPage(1) {
		t.Error("GoToPage(1) on empty view should fail")
	}
	if p.ShowControls() {
		t.Error("empty view should not show controls")
	}
	if w := p.PageWindow(); len(w) != 0 {
		t.Errorf("PageWindow() = %v, want empty", w)
	}
	if start, end := p.Bounds(); start != 0 || end != 0 {
		t.Errorf("Bounds() = %d,%d, want 0,0", start, end)
	}
}

func TestPaginator_ClampAfterShrink(t *testing.T) {
	p := NewPaginator(10)
	p.SetView(50, true)
	p.GoToPage(5)

	p.SetView(15, false)
	if p.CurrentPage() != 2 {
		t.Errorf("after shrink to 2 pages, CurrentPage() = %d, want 2", p.CurrentPage())
	}

	p.SetView(0, false)
	if p.CurrentPage() != 1 {
		t.Errorf("after shrink to empty, CurrentPage() = %d, want 1", p.CurrentPage())
	}
}

func TestPaginator_KeepsPageWhenViewGrowsInPlace(t *testing.T) {
	p := NewPaginator(10)
	p.SetView(30, true)
	p.GoToPage(2)

	p.SetView(31, false)
	if p.CurrentPage() != 2 {
		t.Errorf("CurrentPage() = %d, want 2", p.CurrentPage())
	}

	p.SetView(31, true)
	if p.CurrentPage() != 1 {
		t.Errorf("identity change should reset to page 1, got %d", p.CurrentPage())
	}
}

func TestPaginator_ChangePageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetView(40, true)
	p.GoToPage(3)

	if err := p.ChangePageSize(25); err != nil {
		t.Fatalf("ChangePageSize: %v", err)
	}
	if p.CurrentPage() != 1 || p.TotalPages() != 2 {
		t.Errorf("got page %d of %d, want 1 of 2", p.CurrentPage(), p.TotalPages())
	}

	err := p.ChangePageSize(0)
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "pageSize" {
		t.Fatalf("expected pageSize ValidationError, got %v", err)
	}
	if p.PageSize() != 25 {
		t.Errorf("invalid size changed PageSize to %d", p.PageSize())
	}
}

func renderWindow(w []PageMarker) string {
	parts := make([]string, len(w))
	for i, m := range w {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func TestPaginator_PageWindow(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		current int
		want    string
	}{
		{"single page", 8, 1, ""},
		{"few pages", 30, 2, "1 2 3"},
		{"exactly five pages", 50, 5, "1 2 3 4 5"},
		{"start of many", 100, 1, "1 2 3 4 5 … 10"},
		{"near start", 100, 3, "1 2 3 4 5 … 10"},
		{"middle", 100, 5, "1 … 3 4 5 6 7 … 10"},
		{"middle with gaps on both sides", 100, 6, "1 … 4 5 6 7 8 … 10"},
		{"near end", 100, 8, "1 … 6 7 8 9 10"},
		{"end", 100, 10, "1 … 6 7 8 9 10"},
		{"six pages near end", 60, 4, "1 2 3 4 5 6"},
		{"second window from start", 100, 4, "1 2 3 4 5 6 … 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginator(10)
			p.SetView(tt.items, true)
			if !p.GoToPage(tt.current) {
				t.Fatalf("GoToPage(%d) failed", tt.current)
			}
			if got := renderWindow(p.PageWindow()); got != tt.want {
				t.Errorf("PageWindow() = %q, want %q", got, tt.want)
			}
		})
	}
}
