package publisher

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from a platform API. Body holds the raw
// response so callers can show it.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
}
