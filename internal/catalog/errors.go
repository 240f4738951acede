package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned when an async response arrives after a newer
	// request was issued. The response is discarded and state is unchanged;
	// callers can treat it as benign.
	ErrSuperseded = errors.New("response superseded by a newer request")

	// ErrNoSearcher is returned when the engine has no remote search collaborator
	ErrNoSearcher = errors.New("remote search not available")
)

// SearchError reports a failed remote search. The engine has already fallen
// back to the local filter view when this is returned from ApplySearch.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
