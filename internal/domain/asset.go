package domain

import (
	"fmt"
	"slices"
	"strings"
)

// AssetType is the category of an audio asset
type AssetType string

const (
	AssetTypeMusic      AssetType = "music"
	AssetTypeAmbient    AssetType = "ambient"
	AssetTypeMood       AssetType = "mood"
	AssetTypeAction     AssetType = "action"
	AssetTypeTransition AssetType = "transition"
)

// AssetTypes lists every known asset type in display order
var AssetTypes = []AssetType{
	AssetTypeMusic,
	AssetTypeAmbient,
	AssetTypeMood,
	AssetTypeAction,
	AssetTypeTransition,
}

func (t AssetType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known asset types
func (t AssetType) Valid() bool {
	return slices.Contains(AssetTypes, t)
}

// ParseAssetType converts user input into an AssetType.
// Surrounding whitespace is ignored, the match itself is case-sensitive.
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown asset type %q (expected one of %s)", s, JoinTypes(", ")),
		}
	}
	return t, nil
}

// JoinTypes renders AssetTypes joined by sep
func JoinTypes(sep string) string {
	names := make([]string, len(AssetTypes))
	for i, t := range AssetTypes {
		names[i] = string(t)
	}
	return strings.Join(names, sep)
}

// Asset is an immutable snapshot of one catalog record.
// Updates never patch an Asset in place; the collection is reloaded instead.
type Asset struct {
	ID          int64     `json:"id"`
	Type        AssetType `json:"type"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Duration    int       `json:"duration"` // seconds
	Path        string    `json:"path"`
}

// HasTagContaining reports whether any tag contains sub, ignoring case.
// An asset without tags never matches.
func (a Asset) HasTagContaining(sub string) bool {
	needle := strings.ToLower(sub)
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a
func (a Asset) Clone() Asset {
	a.Tags = slices.Clone(a.Tags)
	return a
}

// NewAsset describes an asset to be registered from an audio file
type NewAsset struct {
	Path        string    `json:"path"`
	Type        AssetType `json:"type"`
	Description string    `json:"description,omitempty"` // derived from Path when empty
	Tags        []string  `json:"tags,omitempty"`
	Duration    int       `json:"duration,omitempty"` // 0 lets the backend detect it
}

// AssetUpdate replaces the mutable fields of an asset.
// A nil Tags clears the tag list on the server.
type AssetUpdate struct {
	Type        AssetType `json:"type"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
}

// SearchParams is the request sent to the remote semantic search
type SearchParams struct {
	Query       string    `json:"query"`
	Type        AssetType `json:"type,omitempty"`
	Tag         string    `json:"tag,omitempty"`
	MinDuration *int      `json:"min_duration,omitempty"`
	MaxDuration *int      `json:"max_duration,omitempty"`
	Limit       int       `json:"limit"`
}

// DefaultSearchLimit caps remote search results when no limit is given
const DefaultSearchLimit = 50

// Stats summarizes the remote collection (display only)
type Stats struct {
	CollectionName string         `json:"collection_name,omitempty"`
	TotalCount     int            `json:"total_count"`
	TypeCounts     map[string]int `json:"type_counts"`
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past an hour
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
