package tasksrepobridge

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/jrazmi/taskapi/bridge/scaffolding/errs"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/infrastructure/web"
)

// Task is the wire representation of a task.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// TaskInput carries a validated create/update payload.
type TaskInput struct {
	Title       string
	Description *string
	Status      tasksrepo.Status
}

const maxTitleRunes = 255

// decodeTaskInput reads and validates the request body. Validation failures
// return a 422-coded error carrying the per-field messages and an echo of
// the submitted body; the repository is never reached with invalid data.
func decodeTaskInput(r *http.Request) (TaskInput, *errs.Error) {
	body, err := web.ReadBody(r)
	if err != nil {
		return TaskInput{}, errs.NewHTTP(http.StatusBadRequest, "Unable to read request body")
	}

	var raw map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return TaskInput{}, errs.NewHTTP(http.StatusBadRequest, "Malformed JSON body")
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	input, fieldErrors := validateTaskInput(raw)
	if len(fieldErrors) > 0 {
		return TaskInput{}, errs.NewValidation(fieldErrors, raw)
	}

	return input, nil
}

func validateTaskInput(raw map[string]any) (TaskInput, map[string][]string) {
	var input TaskInput
	fieldErrors := make(map[string][]string)

	addError := func(field, message string) {
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	if v, ok := raw["title"]; !ok || v == nil {
		addError("title", "The title field is required.")
	} else if s, isString := v.(string); !isString {
		addError("title", "The title field must be a string.")
	} else if s == "" {
		addError("title", "The title field is required.")
	} else if utf8.RuneCountInString(s) > maxTitleRunes {
		addError("title", "The title field must not be greater than 255 characters.")
	} else {
		input.Title = s
	}

	if v, ok := raw["description"]; ok && v != nil {
		if s, isString := v.(string); !isString {
			addError("description", "The description field must be a string.")
		} else {
			input.Description = &s
		}
	}

	if v, ok := raw["status"]; !ok || v == nil {
		addError("status", "The status field is required.")
	} else if s, isString := v.(string); !isString {
		addError("status", "The status field must be a string.")
	} else if s == "" {
		addError("status", "The status field is required.")
	} else if status, err := tasksrepo.ParseStatus(s); err != nil {
		addError("status", "The selected status is invalid.")
	} else {
		input.Status = status
	}

	return input, fieldErrors
}
