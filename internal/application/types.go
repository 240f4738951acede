package application

import "fonoteca/internal/domain"

// Re-export domain types for use by adapters
type (
	Asset          = domain.Asset
	AssetType      = domain.AssetType
	NewAsset       = domain.NewAsset
	AssetUpdate    = domain.AssetUpdate
	FilterCriteria = domain.FilterCriteria
	SearchParams   = domain.SearchParams
	Stats          = domain.Stats
)

// ParseAssetType converts user input into an AssetType
func ParseAssetType(s string) (AssetType, error) {
	return domain.ParseAssetType(s)
}
