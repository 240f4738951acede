package commands

import (
	"context"
	"fmt"

	"fonoteca/internal/application"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// Page is one page of the catalog view
type Page struct {
	Items      []domain.Asset
	View       catalog.ViewState
	Criteria   domain.FilterCriteria
	Pagination catalog.PaginationState
	Window     []catalog.PageMarker
	Warning    string // set when a search fell back to local filtering
}

func pageFrom(s catalog.Snapshot) *Page {
	return &Page{
		Items:      s.Page,
		View:       s.State,
		Criteria:   s.Criteria,
		Pagination: s.Pagination,
		Window:     s.Window,
	}
}

// ListCommand shows one page of the collection filtered by structural criteria
type ListCommand struct {
	engine   *catalog.Engine
	Criteria domain.FilterCriteria
	Page     int // 0 means the first page
	PageSize int // 0 keeps the engine's page size
}

// NewListCommand creates a new ListCommand
func NewListCommand(engine *catalog.Engine, criteria domain.FilterCriteria, page, pageSize int) *ListCommand {
	return &ListCommand{
		engine:   engine,
		Criteria: criteria,
		Page:     page,
		PageSize: pageSize,
	}
}

// Validate checks if the list operation is valid
func (c *ListCommand) Validate() error {
	return validatePaging(c.Criteria, c.Page, c.PageSize)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := prepareView(ctx, c.engine, c.Criteria, c.PageSize); err != nil {
		return nil, err
	}
	if err := goToPage(c.engine, c.Page); err != nil {
		return nil, err
	}
	return pageFrom(c.engine.Snapshot()), nil
}

func validatePaging(criteria domain.FilterCriteria, page, pageSize int) error {
	if err := criteria.Validate(); err != nil {
		return err
	}
	if page < 0 {
		return &application.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("page must be positive, got %d", page),
		}
	}
	if pageSize < 0 {
		return application.ValidatePageSize(pageSize)
	}
	return nil
}

// prepareView loads the collection on first use and applies page size and
// structural criteria
func prepareView(ctx context.Context, engine *catalog.Engine, criteria domain.FilterCriteria, pageSize int) error {
	if engine == nil {
		return application.ErrNoBackend
	}
	if !engine.Snapshot().Loaded {
		if err := engine.Load(ctx); err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}
	if pageSize > 0 {
		if err := engine.ChangePageSize(pageSize); err != nil {
			return err
		}
	}
	if criteria.Structural().IsEmpty() {
		engine.ClearFilters()
		return nil
	}
	return engine.SetStructuralFilter(criteria.Structural())
}

func goToPage(engine *catalog.Engine, page int) error {
	if page <= 1 {
		return nil
	}
	if !engine.GoToPage(page) {
		return &application.ValidationError{
			Field:   "page",
			Message: fmt.Sprintf("page %d out of range (%d pages)", page, engine.PaginationState().TotalPages),
		}
	}
	return nil
}
