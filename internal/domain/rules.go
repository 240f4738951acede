package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTags      = 50
	MaxTagLength = 64
)

// durationRule bounds are exclusive; a zero max means unbounded
type durationRule struct {
	min, max int
	message  string
}

var durationRules = map[AssetType]durationRule{
	AssetTypeAction:     {1, 10, "action sound effects must be between 1-10 seconds"},
	AssetTypeTransition: {1, 10, "transition sound effects must be between 1-10 seconds"},
	AssetTypeAmbient:    {60, 0, "ambient sound effects must be longer than 60 seconds"},
	AssetTypeMusic:      {60, 0, "music must be longer than 60 seconds"},
	AssetTypeMood:       {30, 0, "mood sound effects must be longer than 30 seconds"},
}

// ValidateDuration checks a duration against the rules for its asset type
func ValidateDuration(t AssetType, seconds int) error {
	if seconds <= 0 {
		return &ValidationError{Field: "duration", Message: "duration must be positive"}
	}
	rule, ok := durationRules[t]
	if !ok {
		return nil
	}
	if seconds <= rule.min || (rule.max > 0 && seconds >= rule.max) {
		return &ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("%s, got %d seconds", rule.message, seconds),
		}
	}
	return nil
}

var (
	digitsPattern     = regexp.MustCompile(`\d+`)
	nonWordPattern    = regexp.MustCompile(`[^\p{Han}a-z\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// DescriptionFromFilename derives a description from an upload's file name:
// extension dropped, lowercased, digits removed, anything that is not a-z,
// a Han character or whitespace turned into a space.
func DescriptionFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	desc := strings.ToLower(name)
	desc = digitsPattern.ReplaceAllString(desc, "")
	desc = nonWordPattern.ReplaceAllString(desc, " ")
	desc = strings.TrimSpace(whitespacePattern.ReplaceAllString(desc, " "))

	if desc == "" {
		return "audio material"
	}
	return desc
}

// NormalizeTags trims tags and drops empties and duplicates, keeping the
// first occurrence of each.
func NormalizeTags(tags []string) ([]string, error) {
	if tags == nil {
		return nil, nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, &ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("tag length cannot exceed %d characters: %q", MaxTagLength, tag),
			}
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) > MaxTags {
		return nil, &ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("maximum %d tags allowed", MaxTags),
		}
	}
	return out, nil
}

// SplitTags parses a comma separated tag list as typed in forms and flags
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// typeHints maps path keywords to the asset type they usually indicate.
// Checked in order, first hit wins.
var typeHints = []struct {
	t        AssetType
	keywords []string
}{
	{AssetTypeTransition, []string{"转场", "transition", "whoosh", "swoosh", "hit", "撞击"}},
	{AssetTypeAction, []string{"动作", "action", "punch", "impact", "explosion", "door", "footstep"}},
	{AssetTypeMusic, []string{"音乐", "music", "bgm", "song", "theme"}},
	{AssetTypeMood, []string{"情绪", "mood", "tension", "suspense", "drone"}},
	{AssetTypeAmbient, []string{"环境", "ambient", "ambience", "environment", "rain", "thunder", "wind", "forest", "ocean", "city", "traffic", "crowd"}},
}

// SuggestType guesses an asset type from a file path, or returns "" when
// nothing matches.
func SuggestType(path string) AssetType {
	lower := strings.ToLower(path)
	for _, hint := range typeHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.t
			}
		}
	}
	return ""
}

// Prepare validates a new asset and fills in what can be derived: the
// description from the file name and the normalized tag list. A zero
// duration is left for the backend to detect.
func (n NewAsset) Prepare() (NewAsset, error) {
	n.Path = strings.TrimSpace(n.Path)
	if n.Path == "" {
		return NewAsset{}, &ValidationError{Field: "path", Message: "file path is required"}
	}
	if !n.Type.Valid() {
		return NewAsset{}, &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown asset type %q (expected one of %s)", n.Type, JoinTypes(", ")),
		}
	}

	n.Description = strings.TrimSpace(n.Description)
	if n.Description == "" {
		n.Description = DescriptionFromFilename(n.Path)
	}

	tags, err := NormalizeTags(n.Tags)
	if err != nil {
		return NewAsset{}, err
	}
	n.Tags = tags

	if n.Duration != 0 {
		if err := ValidateDuration(n.Type, n.Duration); err != nil {
			return NewAsset{}, err
		}
	}
	return n, nil
}

// Prepare validates an update and normalizes its tags
func (u AssetUpdate) Prepare() (AssetUpdate, error) {
	if !u.Type.Valid() {
		return AssetUpdate{}, &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown asset type %q (expected one of %s)", u.Type, JoinTypes(", ")),
		}
	}
	u.Description = strings.TrimSpace(u.Description)
	if u.Description == "" {
		return AssetUpdate{}, &ValidationError{Field: "description", Message: "description cannot be empty"}
	}
	tags, err := NormalizeTags(u.Tags)
	if err != nil {
		return AssetUpdate{}, err
	}
	u.Tags = tags
	return u, nil
}
