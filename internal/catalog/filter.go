package catalog

import "fonoteca/internal/domain"

// Filter returns the assets of collection matching the structural part of
// criteria, in input order. The free-text query is never evaluated here;
// description matching only happens through the remote search.
func Filter(collection []domain.Asset, criteria domain.FilterCriteria) []domain.Asset {
	structural := criteria.Structural()
	out := make([]domain.Asset, 0, len(collection))
	for _, a := range collection {
		if structural.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}
