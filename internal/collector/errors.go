package collector

import (
	"errors"
	"fmt"
)

// ErrListingNotFound is returned when the listing page has no job container.
var ErrListingNotFound = errors.New("job listing container not found")

// FetchError reports a page that could not be retrieved, either because the
// request failed or because the server answered with a non-success status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
