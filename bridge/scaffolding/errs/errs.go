// Package errs provides types and support related to web error functionality.
// Lower layers fail with sentinel errors; the bridge converts those into
// coded errors here; the error middleware translates codes into the HTTP
// envelope. Nothing below the bridge knows about HTTP statuses.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sort"
	"strings"
)

// Error represents an error in the system with its classification and any
// code-specific detail the translator needs.
type Error struct {
	Code       Code                `json:"code"`
	Message    string              `json:"message"`
	Fields     map[string][]string `json:"fields,omitempty"`
	Request    map[string]any      `json:"request,omitempty"`
	Model      string              `json:"model,omitempty"`
	RetryAfter int                 `json:"retryAfter,omitempty"`
	Status     int                 `json:"status,omitempty"`
	FuncName   string              `json:"-"`
	FileName   string              `json:"-"`
}

// New constructs an error based on an app error.
func New(code Code, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code Code, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewValidation constructs a validation error from the per-field messages
// and the raw submitted request body. The message is every field message
// flattened in field order and joined with "; ".
func NewValidation(fields map[string][]string, request map[string]any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		messages = append(messages, fields[name]...)
	}

	return &Error{
		Code:     Validation,
		Message:  strings.Join(messages, "; "),
		Fields:   fields,
		Request:  request,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewNotFound constructs a not-found error recording the entity type name.
func NewNotFound(model string) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     NotFound,
		Message:  "Entity not found",
		Model:    model,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewTooManyRequests constructs a rate-limit error with a retry hint in
// seconds, 0 when unknown.
func NewTooManyRequests(retryAfter int) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:       TooManyRequests,
		Message:    "Too Many Requests",
		RetryAfter: retryAfter,
		FuncName:   runtime.FuncForPC(pc).Name(),
		FileName:   fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewHTTP constructs an error carrying an explicit HTTP status code.
func NewHTTP(status int, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     HTTP,
		Message:  fmt.Sprintf(format, v...),
		Status:   status,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus returns the status the error's classification maps to.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case Validation:
		return http.StatusUnprocessableEntity
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case Unauthorized:
		return http.StatusForbidden
	case TooManyRequests:
		return http.StatusTooManyRequests
	case HTTP:
		if e.Status != 0 {
			return e.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Encode implements the web Encoder interface. The error middleware replaces
// errors with the response envelope before they reach the writer, so this is
// only exercised when a handler is registered without the middleware chain.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// IsError tests whether err carries an *Error and returns it.
func IsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
