package commands

import (
	"context"
	"fmt"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// MutationObserver is told when the backend has accepted a mutation.
// *catalog.Engine implements it.
type MutationObserver interface {
	OnMutationCompleted(ctx context.Context) error
}

// MutationResult contains the result of a create or update
type MutationResult struct {
	Asset   domain.Asset
	Message string
	Warning string // set when the mutation succeeded but the reload did not
}

// notify reloads the observer's view after a mutation. The mutation has
// already succeeded, so a failed reload is reported as a warning.
func notify(ctx context.Context, o MutationObserver) string {
	if o == nil {
		return ""
	}
	if err := o.OnMutationCompleted(ctx); err != nil {
		return fmt.Sprintf("catalog not refreshed: %v", err)
	}
	return ""
}

// CreateCommand registers an audio file as a new asset
type CreateCommand struct {
	api         ports.CatalogWriter
	observer    MutationObserver
	Path        string
	Type        string
	Description string
	Tags        []string
	Duration    int // seconds, 0 lets the backend detect it
}

// NewCreateCommand creates a new CreateCommand. observer may be nil.
func NewCreateCommand(api ports.CatalogWriter, observer MutationObserver, path, assetType string) *CreateCommand {
	return &CreateCommand{
		api:      api,
		observer: observer,
		Path:     path,
		Type:     assetType,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	_, err := c.prepare()
	return err
}

func (c *CreateCommand) prepare() (domain.NewAsset, error) {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return domain.NewAsset{}, err
	}
	if err := application.ValidateRequired("type", c.Type); err != nil {
		return domain.NewAsset{}, err
	}
	t, err := domain.ParseAssetType(c.Type)
	if err != nil {
		return domain.NewAsset{}, err
	}
	if c.Duration < 0 {
		return domain.NewAsset{}, &application.ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("duration must be positive, got %d", c.Duration),
		}
	}

	return domain.NewAsset{
		Path:        c.Path,
		Type:        t,
		Description: c.Description,
		Tags:        c.Tags,
		Duration:    c.Duration,
	}.Prepare()
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context) (*MutationResult, error) {
	asset, err := c.prepare()
	if err != nil {
		return nil, err
	}

	created, err := c.api.Create(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return &MutationResult{
		Asset:   created,
		Message: fmt.Sprintf("Created asset %d: %s", created.ID, created.Description),
		Warning: notify(ctx, c.observer),
	}, nil
}
