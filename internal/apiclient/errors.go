package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/eaglebank/console/shared/models"
)

// APIError is returned for every non-2xx response. Body holds the raw
// response bytes exactly as received.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if env, ok := e.Envelope(); ok && env.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, env.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Envelope decodes the backend's error envelope when the body carries one.
func (e *APIError) Envelope() (*models.Envelope[json.RawMessage], bool) {
	if len(e.Body) == 0 {
		return nil, false
	}
	var env models.Envelope[json.RawMessage]
	if err := json.Unmarshal(e.Body, &env); err != nil {
		return nil, false
	}
	return &env, true
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
