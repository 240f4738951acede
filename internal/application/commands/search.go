package commands

import (
	"context"
	"errors"
	"fmt"

	"fonoteca/internal/application"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
)

// SearchCommand runs a remote free-text search narrowed by structural criteria
type SearchCommand struct {
	engine   *catalog.Engine
	Query    string
	Criteria domain.FilterCriteria
	Page     int
	PageSize int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(engine *catalog.Engine, query string, criteria domain.FilterCriteria) *SearchCommand {
	return &SearchCommand{
		engine:   engine,
		Query:    query,
		Criteria: criteria,
	}
}

// Validate checks if the search is valid
func (c *SearchCommand) Validate() error {
	if err := application.ValidateRequired("query", c.Query); err != nil {
		return err
	}
	return validatePaging(c.Criteria, c.Page, c.PageSize)
}

// Execute runs the search. When the remote search fails the page holds the
// local filter results and Warning explains why.
func (c *SearchCommand) Execute(ctx context.Context) (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := prepareView(ctx, c.engine, c.Criteria, c.PageSize); err != nil {
		return nil, err
	}

	var warning string
	if err := c.engine.RunSearch(ctx, c.Query); err != nil {
		var searchErr *catalog.SearchError
		if !errors.As(err, &searchErr) {
			return nil, fmt.Errorf("search failed: %w", err)
		}
		warning = fmt.Sprintf("%v; showing local filter results", searchErr)
	}

	if err := goToPage(c.engine, c.Page); err != nil {
		return nil, err
	}

	page := pageFrom(c.engine.Snapshot())
	page.Warning = warning
	return page, nil
}
