package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an artifact does not exist in the source.
var ErrNotFound = errors.New("artifact not found")

// Source fetches raw artifacts (CSV, JSON, GeoJSON) by relative path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// StatusError reports a non-success response for a fetched artifact.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status %d", e.Path, e.Code)
}

// Is makes 404 responses match ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}
