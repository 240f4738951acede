package application

import (
	"errors"
	"fmt"
	"net/http"

	"fonoteca/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound  = errors.New("not found")
	ErrTransport = errors.New("transport failure")
	ErrNoBackend = errors.New("no catalog backend configured")
)

// ValidationError represents a validation failure with details
type ValidationError = domain.ValidationError

// TransportError represents a failed call to the catalog API: the server
// was unreachable or answered with a non-2xx status.
type TransportError struct {
	Op         string // e.g. "list", "search"
	StatusCode int    // 0 when no response was received
	Detail     string // server supplied detail, if any
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s failed: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	if target == ErrTransport {
		return true
	}
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NotFoundError reports a missing asset
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
