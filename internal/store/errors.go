package store

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is matched by errors.Is for 404 responses and missing products
var ErrNotFound = errors.New("product not found")

// ErrUnavailable is returned while the circuit breaker is open
var ErrUnavailable = errors.New("store unavailable")

// StatusError reports a non-2xx response from the store
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + truncate(body)
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match a 404
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Temporary reports whether the failure is on the store's side
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500
}
