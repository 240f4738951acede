package application

import (
	"fmt"
	"strconv"
	"strings"

	"fonoteca/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "minDuration" -> "min duration")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":          "ID",
		"path":        "file path",
		"minDuration": "min duration",
		"maxDuration": "max duration",
		"pageSize":    "page size",
		"query":       "query",
		"type":        "type",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateID checks that an asset ID is positive
func ValidateID(id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("invalid ID: %d", id),
		}
	}
	return nil
}

// ParseID parses an asset ID from user input
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("invalid ID: %q", s),
		}
	}
	return id, ValidateID(id)
}

// ParseDurationBound parses an optional duration bound in seconds.
// Blank input yields nil.
func ParseDurationBound(fieldName, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be a non-negative number of seconds, got %q", formatFieldName(fieldName), s),
		}
	}
	return &v, nil
}

// ParseCriteria builds structural filter criteria from raw form or flag
// values and validates them.
func ParseCriteria(assetType, tag, minDuration, maxDuration string) (FilterCriteria, error) {
	var c FilterCriteria

	if strings.TrimSpace(assetType) != "" {
		t, err := domain.ParseAssetType(assetType)
		if err != nil {
			return FilterCriteria{}, err
		}
		c.Type = t
	}
	c.Tag = strings.TrimSpace(tag)

	var err error
	if c.MinDuration, err = ParseDurationBound("minDuration", minDuration); err != nil {
		return FilterCriteria{}, err
	}
	if c.MaxDuration, err = ParseDurationBound("maxDuration", maxDuration); err != nil {
		return FilterCriteria{}, err
	}

	if err := c.Validate(); err != nil {
		return FilterCriteria{}, err
	}
	return c, nil
}

// ValidatePageSize checks that a page size is usable
func ValidatePageSize(n int) error {
	if n <= 0 {
		return &ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("page size must be positive, got %d", n),
		}
	}
	return nil
}
