// Package apiresponse builds the uniform JSON envelope every endpoint
// responds with:
//
//	{ "type": ..., "message": ..., "data": ..., "meta": {} }
//
// Success, error, info and warning responses all share the shape.
// Validation failures and paginated listings are fixed specializations.
// Builders are pure formatting functions; they never mutate their inputs.
package apiresponse

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// Type is the envelope kind carried in the "type" field.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
)

// EmptyData is the conventional empty payload. Callers that have no data to
// return pass it so "data" serializes as [] rather than null.
var EmptyData = []any{}

// Envelope is the uniform response shape.
type Envelope struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta"`

	status int
}

// New is the single constructor all kinds go through. A zero status selects
// the kind's default: 200 for success and info, 400 for error, 300 for
// warning. A nil meta serializes as {}, never null.
func New(t Type, message string, data any, status int, meta map[string]any) Envelope {
	if status == 0 {
		status = defaultStatus(t)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return Envelope{
		Type:    t,
		Message: message,
		Data:    data,
		Meta:    meta,
		status:  status,
	}
}

func defaultStatus(t Type) int {
	switch t {
	case TypeError:
		return http.StatusBadRequest
	case TypeWarning:
		return http.StatusMultipleChoices
	default:
		return http.StatusOK
	}
}

// Success builds a success envelope with the default 200 status.
func Success(message string, data any) Envelope {
	return New(TypeSuccess, message, data, 0, nil)
}

// SuccessWithStatus builds a success envelope with an overridden status.
func SuccessWithStatus(message string, data any, status int) Envelope {
	return New(TypeSuccess, message, data, status, nil)
}

// Error builds an error envelope. A zero status means 400.
func Error(message string, data any, status int) Envelope {
	return New(TypeError, message, data, status, nil)
}

// Info builds an info envelope with the default 200 status.
func Info(message string, data any) Envelope {
	return New(TypeInfo, message, data, 0, nil)
}

// Warning builds a warning envelope. A zero status means 300.
func Warning(message string, data any, status int) Envelope {
	return New(TypeWarning, message, data, status, nil)
}

// ValidationError builds the fixed validation specialization: an error
// envelope with status 422, data carrying the per-field messages and an
// echo of the submitted request body, and a message flattening every field
// message joined with "; ".
func ValidationError(fieldErrors map[string][]string, request map[string]any) Envelope {
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		messages = append(messages, fieldErrors[name]...)
	}

	data := map[string]any{
		"errors":  fieldErrors,
		"request": request,
	}

	return New(TypeError, strings.Join(messages, "; "), data, http.StatusUnprocessableEntity, nil)
}

// File builds an envelope for file delivery outcomes: error type for
// statuses from 400 up, success otherwise.
func File(message string, data any, status int) Envelope {
	t := TypeSuccess
	if status >= 400 {
		t = TypeError
	}
	return New(t, message, data, status, nil)
}

// Encode implements the web Encoder interface.
func (e Envelope) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus reports the status the envelope was built with.
func (e Envelope) HTTPStatus() int {
	return e.status
}
