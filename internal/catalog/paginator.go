package catalog

import (
	"fmt"
	"strconv"

	"fonoteca/internal/domain"
)

// DefaultPageSize is used when a paginator is created with a non-positive size
const DefaultPageSize = 10

// pageWindowSize is the number of consecutive page numbers shown around the
// current page
const pageWindowSize = 5

// PaginationState is the navigable page state of the current view
type PaginationState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
	TotalPages   int
}

// PageMarker is one entry of a page navigation window: a page number or a
// gap between non-adjacent page numbers.
type PageMarker struct {
	Page int
	Gap  bool
}

func (m PageMarker) String() string {
	if m.Gap {
		return "…"
	}
	return strconv.Itoa(m.Page)
}

// Paginator provides pagination logic over the current view.
// CurrentPage stays within [1, max(1, TotalPages)] after every call.
type Paginator struct {
	currentPage  int
	itemsPerPage int
	totalItems   int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{
		currentPage:  1,
		itemsPerPage: pageSize,
	}
}

// SetView records the size of a new view. When the view identity changed
// (filter, search, clear, mutation) the paginator returns to page 1;
// otherwise the current page is kept unless it fell out of range.
func (p *Paginator) SetView(totalItems int, identityChanged bool) {
	if totalItems < 0 {
		totalItems = 0
	}
	shrunk := totalItems < p.totalItems
	p.totalItems = totalItems

	if identityChanged {
		p.currentPage = 1
		return
	}
	if shrunk {
		p.ClampAfterShrink()
	}
	p.clamp()
}

// GoToPage moves to page n. Out of range pages are ignored.
func (p *Paginator) GoToPage(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.currentPage = n
	return true
}

// NextPage moves to the next page
func (p *Paginator) NextPage() bool {
	return p.GoToPage(p.currentPage + 1)
}

// PrevPage moves to the previous page
func (p *Paginator) PrevPage() bool {
	return p.GoToPage(p.currentPage - 1)
}

// ChangePageSize sets the number of items per page and returns to page 1
func (p *Paginator) ChangePageSize(n int) error {
	if n <= 0 {
		return &domain.ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("page size must be positive, got %d", n),
		}
	}
	p.itemsPerPage = n
	p.currentPage = 1
	return nil
}

// ClampAfterShrink pulls the current page back onto the last page when the
// view shrank below it (e.g. a delete emptied the last page).
func (p *Paginator) ClampAfterShrink() {
	if total := p.TotalPages(); p.currentPage > total {
		p.currentPage = max(1, total)
	}
}

func (p *Paginator) clamp() {
	p.ClampAfterShrink()
	if p.currentPage < 1 {
		p.currentPage = 1
	}
}

// TotalPages returns the total number of pages, 0 for an empty view
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 0
	}
	return (p.totalItems + p.itemsPerPage - 1) / p.itemsPerPage
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.currentPage
}

// PageSize returns the number of items per page
func (p *Paginator) PageSize() int {
	return p.itemsPerPage
}

// Bounds returns the start and end indices of the current page
func (p *Paginator) Bounds() (start, end int) {
	start = min((p.currentPage-1)*p.itemsPerPage, p.totalItems)
	end = min(start+p.itemsPerPage, p.totalItems)
	return
}

// ShowControls reports whether the view spans more than one page
func (p *Paginator) ShowControls() bool {
	return p.totalItems > p.itemsPerPage
}

// State returns a snapshot of the pagination state
func (p *Paginator) State() PaginationState {
	return PaginationState{
		CurrentPage:  p.currentPage,
		ItemsPerPage: p.itemsPerPage,
		TotalItems:   p.totalItems,
		TotalPages:   p.TotalPages(),
	}
}

// PageWindow returns the page numbers to expose for navigation: the first
// page, the last page and up to five consecutive pages around the current
// one, with gap markers between non-adjacent groups. Near either end the
// window sticks to that end. Empty when there is at most one page.
func (p *Paginator) PageWindow() []PageMarker {
	total := p.TotalPages()
	if total <= 1 {
		return nil
	}

	var start, end int
	switch {
	case total <= pageWindowSize:
		start, end = 1, total
	case p.currentPage <= 3:
		start, end = 1, pageWindowSize
	case p.currentPage > total-3:
		start, end = total-pageWindowSize+1, total
	default:
		start, end = p.currentPage-2, p.currentPage+2
	}

	window := make([]PageMarker, 0, pageWindowSize+4)
	if start > 1 {
		window = append(window, PageMarker{Page: 1})
		if start > 2 {
			window = append(window, PageMarker{Gap: true})
		}
	}
	for n := start; n <= end; n++ {
		window = append(window, PageMarker{Page: n})
	}
	if end < total {
		if end < total-1 {
			window = append(window, PageMarker{Gap: true})
		}
		window = append(window, PageMarker{Page: total})
	}
	return window
}
