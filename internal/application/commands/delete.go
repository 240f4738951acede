package commands

import (
	"context"
	"fmt"

	"fonoteca/internal/application"
	"fonoteca/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID int64
	Message   string
	Warning   string
}

// DeleteCommand deletes an asset by ID
type DeleteCommand struct {
	api      ports.CatalogWriter
	observer MutationObserver
	ID       int64
}

// NewDeleteCommand creates a new DeleteCommand. observer may be nil.
func NewDeleteCommand(api ports.CatalogWriter, observer MutationObserver, id int64) *DeleteCommand {
	return &DeleteCommand{
		api:      api,
		observer: observer,
		ID:       id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateID(c.ID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.api.Delete(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete asset %d: %w", c.ID, err)
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted asset %d", c.ID),
		Warning:   notify(ctx, c.observer),
	}, nil
}
