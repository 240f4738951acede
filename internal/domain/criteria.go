package domain

import (
	"fmt"
	"strings"
)

// FilterCriteria holds the user's filter input. Type, Tag and the duration
// bounds are structural and evaluated locally; Query is free text and is
// only ever evaluated by the remote search.
type FilterCriteria struct {
	Type        AssetType // empty means any type
	Tag         string    // case-insensitive substring of any tag
	MinDuration *int      // inclusive
	MaxDuration *int      // inclusive
	Query       string
}

// IntPtr returns a pointer to v, for building duration bounds
func IntPtr(v int) *int {
	return &v
}

// Structural returns the criteria without the free-text query
func (c FilterCriteria) Structural() FilterCriteria {
	c.Query = ""
	return c
}

// HasQuery reports whether a non-blank free-text query is present
func (c FilterCriteria) HasQuery() bool {
	return strings.TrimSpace(c.Query) != ""
}

// IsEmpty reports whether no structural predicate is set
func (c FilterCriteria) IsEmpty() bool {
	return c.Type == "" && c.Tag == "" && c.MinDuration == nil && c.MaxDuration == nil
}

// Equal compares two criteria by value
func (c FilterCriteria) Equal(o FilterCriteria) bool {
	return c.Type == o.Type &&
		c.Tag == o.Tag &&
		c.Query == o.Query &&
		intPtrEqual(c.MinDuration, o.MinDuration) &&
		intPtrEqual(c.MaxDuration, o.MaxDuration)
}

// Clone copies the bound pointers so the result shares nothing with c
func (c FilterCriteria) Clone() FilterCriteria {
	if c.MinDuration != nil {
		c.MinDuration = IntPtr(*c.MinDuration)
	}
	if c.MaxDuration != nil {
		c.MaxDuration = IntPtr(*c.MaxDuration)
	}
	return c
}

// Validate checks the criteria for malformed input
func (c FilterCriteria) Validate() error {
	if c.Type != "" && !c.Type.Valid() {
		return &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown asset type %q", c.Type),
		}
	}
	if c.MinDuration != nil && *c.MinDuration < 0 {
		return &ValidationError{Field: "minDuration", Message: "min duration cannot be negative"}
	}
	if c.MaxDuration != nil && *c.MaxDuration < 0 {
		return &ValidationError{Field: "maxDuration", Message: "max duration cannot be negative"}
	}
	if c.MinDuration != nil && c.MaxDuration != nil && *c.MinDuration > *c.MaxDuration {
		return &ValidationError{
			Field:   "minDuration",
			Message: fmt.Sprintf("min duration %d cannot be greater than max duration %d", *c.MinDuration, *c.MaxDuration),
		}
	}
	return nil
}

// Matches evaluates the structural predicates against a single asset, in
// the order type, tag, min duration, max duration.
func (c FilterCriteria) Matches(a Asset) bool {
	if c.Type != "" && a.Type != c.Type {
		return false
	}
	if c.Tag != "" && !a.HasTagContaining(c.Tag) {
		return false
	}
	if c.MinDuration != nil && a.Duration < *c.MinDuration {
		return false
	}
	if c.MaxDuration != nil && a.Duration > *c.MaxDuration {
		return false
	}
	return true
}

// SearchParams builds the remote search request for query narrowed by the
// structural part of c.
func (c FilterCriteria) SearchParams(query string, limit int) SearchParams {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	s := c.Clone()
	return SearchParams{
		Query:       strings.TrimSpace(query),
		Type:        s.Type,
		Tag:         strings.TrimSpace(s.Tag),
		MinDuration: s.MinDuration,
		MaxDuration: s.MaxDuration,
		Limit:       limit,
	}
}

// String renders the active predicates for status lines
func (c FilterCriteria) String() string {
	var parts []string
	if c.Type != "" {
		parts = append(parts, "type="+string(c.Type))
	}
	if c.Tag != "" {
		parts = append(parts, fmt.Sprintf("tag~%q", c.Tag))
	}
	if c.MinDuration != nil {
		parts = append(parts, fmt.Sprintf("duration>=%d", *c.MinDuration))
	}
	if c.MaxDuration != nil {
		parts = append(parts, fmt.Sprintf("duration<=%d", *c.MaxDuration))
	}
	if c.Query != "" {
		parts = append(parts, fmt.Sprintf("query=%q", c.Query))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, " ")
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
