package sqlite

import (
	"path/filepath"
	"sort"
	"strings"

	"fonoteca/internal/domain"
)

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: runes of the query appear in order
	t := []rune(target)
	q := []rune(query)
	score := 0
	qi := 0
	prev := -1

	for i := 0; i < len(t) && qi < len(q); i++ {
		if t[i] != q[qi] {
			continue
		}
		if prev == i-1 {
			score += 10 // consecutive
		}
		if i == 0 {
			score += 15 // start of string
		}
		if i > 0 && (t[i-1] == ' ' || t[i-1] == '_' || t[i-1] == '-') {
			score += 10 // after separator
		}
		score++
		prev = i
		qi++
	}

	if qi == len(q) {
		return score
	}
	return 0
}

// assetScore is the best score of the query against the description, any
// tag, or the file name
func assetScore(a domain.Asset, query string) int {
	best := FuzzyScore(a.Description, query)
	for _, tag := range a.Tags {
		best = max(best, FuzzyScore(tag, query))
	}
	name := filepath.Base(a.Path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return max(best, FuzzyScore(name, query))
}

// Rank orders assets by relevance to query, drops non-matching ones and
// keeps at most limit results. Ties keep their input order.
func Rank(assets []domain.Asset, query string, limit int) []domain.Asset {
	type scored struct {
		asset domain.Asset
		score int
	}

	query = strings.TrimSpace(query)
	matches := make([]scored, 0, len(assets))
	for _, a := range assets {
		if s := assetScore(a, query); s > 0 {
			matches = append(matches, scored{asset: a, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]domain.Asset, len(matches))
	for i, m := range matches {
		out[i] = m.asset
	}
	return out
}
