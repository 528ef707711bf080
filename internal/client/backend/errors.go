package backend

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("backend unavailable")
	ErrMalformedResponse = errors.New("malformed backend response")
)

// HTTPError is a non-2xx reply.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("network error: %d - %s", e.Status, e.Body)
}
