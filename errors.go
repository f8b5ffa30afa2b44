package tagsheet

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the package.
var (
	// ErrClosed is returned when attempting to use a closed [Renderer].
	ErrClosed = errors.New("tagsheet: renderer is closed")

	// ErrInvalidURL is returned for an address without a scheme or host.
	ErrInvalidURL = errors.New("tagsheet: invalid URL")
)

// HTTPStatusError reports a document answered with a non-2xx status.
type HTTPStatusError struct {
	URL    string
	Status int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("tagsheet: %s answered %d %s", e.URL, e.Status, http.StatusText(e.Status))
}
