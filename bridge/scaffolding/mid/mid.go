// Package mid provides app level middleware support.
package mid

import (
	"net/http"
	"strings"

	"github.com/jrazmi/taskapi/infrastructure/web"
)

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}

// expectsJSON reports whether the client signaled it wants an API response.
// Requests without the signal fall through to plain status-text handling.
func expectsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") || strings.Contains(accept, "+json") {
		return true
	}
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return false
}
