package commands

import (
	"context"
	"fmt"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// assetUpdater is the part of the catalog an update needs
type assetUpdater interface {
	Get(ctx context.Context, id int64) (domain.Asset, error)
	Update(ctx context.Context, id int64, update domain.AssetUpdate) (domain.Asset, error)
}

// UpdateCommand changes type, description and tags of an asset. Nil fields
// keep their current value.
type UpdateCommand struct {
	api         assetUpdater
	observer    MutationObserver
	ID          int64
	Type        *string
	Description *string
	Tags        *[]string // pointer to an empty slice clears the tags
}

// NewUpdateCommand creates a new UpdateCommand. observer may be nil.
func NewUpdateCommand(api ports.CatalogAPI, observer MutationObserver, id int64) *UpdateCommand {
	return &UpdateCommand{
		api:      api,
		observer: observer,
		ID:       id,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateID(c.ID); err != nil {
		return err
	}
	if c.Type == nil && c.Description == nil && c.Tags == nil {
		return &application.ValidationError{
			Field:   "update",
			Message: "nothing to update: set type, description or tags",
		}
	}
	if c.Type != nil {
		if _, err := domain.ParseAssetType(*c.Type); err != nil {
			return err
		}
	}
	if c.Description != nil {
		if err := application.ValidateRequired("description", *c.Description); err != nil {
			return err
		}
	}
	return nil
}

// merge applies the set fields on top of the current asset
func (c *UpdateCommand) merge(current domain.Asset) (domain.AssetUpdate, error) {
	update := domain.AssetUpdate{
		Type:        current.Type,
		Description: current.Description,
		Tags:        current.Tags,
	}
	if c.Type != nil {
		t, err := domain.ParseAssetType(*c.Type)
		if err != nil {
			return domain.AssetUpdate{}, err
		}
		update.Type = t
	}
	if c.Description != nil {
		update.Description = *c.Description
	}
	if c.Tags != nil {
		update.Tags = *c.Tags
	}

	update, err := update.Prepare()
	if err != nil {
		return domain.AssetUpdate{}, err
	}
	if update.Type != current.Type {
		if err := domain.ValidateDuration(update.Type, current.Duration); err != nil {
			return domain.AssetUpdate{}, err
		}
	}
	return update, nil
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context) (*MutationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := c.api.Get(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %d: %w", c.ID, err)
	}

	update, err := c.merge(current)
	if err != nil {
		return nil, err
	}

	updated, err := c.api.Update(ctx, c.ID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset %d: %w", c.ID, err)
	}

	return &MutationResult{
		Asset:   updated,
		Message: fmt.Sprintf("Updated asset %d: %s", updated.ID, updated.Description),
		Warning: notify(ctx, c.observer),
	}, nil
}
