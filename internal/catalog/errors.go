package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by barcode lookups that match no product.
var ErrNotFound = errors.New("product not found")

// StatusError captures non-2xx HTTP responses from the upstream feed.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
}
