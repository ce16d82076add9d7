package tasksrepobridge_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskapi/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskapi/bridge/scaffolding/mid"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskapi/infrastructure/web"
	"github.com/jrazmi/taskapi/sdk/logger"
)

func newTestHandler() *web.WebHandler {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	repo := tasksrepo.NewRepository(log, tasksmemstore.NewStore())

	app := web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(
			mid.Errors(log, false),
			mid.Panics(),
		),
	)

	tasksrepobridge.AddHttpRoutes(app.Group("/api/v1"), tasksrepobridge.Config{
		Log:        log,
		Repository: repo,
	})

	return app
}

func doJSON(t *testing.T, app *web.WebHandler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	r.Header.Set("Accept", "application/json")
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	return w, decoded
}

func createTask(t *testing.T, app *web.WebHandler, body string) map[string]any {
	t.Helper()

	w, decoded := doJSON(t, app, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decoded["data"].(map[string]any)
}

func TestCreateTask(t *testing.T) {
	app := newTestHandler()

	w, decoded := doJSON(t, app, http.MethodPost, "/api/v1/tasks",
		`{"title": "Buy milk", "description": "2 liters", "status": "pending"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", decoded["type"])
	assert.Equal(t, "Task created", decoded["message"])
	assert.Equal(t, map[string]any{}, decoded["meta"])

	data := decoded["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "Buy milk", data["title"])
	assert.Equal(t, "2 liters", data["description"])
	assert.Equal(t, "pending", data["status"])

	for _, field := range []string{"created_at", "updated_at"} {
		_, err := time.Parse(time.RFC3339, data[field].(string))
		assert.NoError(t, err, field)
	}
}

func TestCreateTaskWithoutDescription(t *testing.T) {
	app := newTestHandler()

	data := createTask(t, app, `{"title": "No notes", "status": "done"}`)

	assert.Nil(t, data["description"])
}

func TestListTasksNewestFirst(t *testing.T) {
	app := newTestHandler()
	for _, title := range []string{"first", "second", "third"} {
		createTask(t, app, `{"title": "`+title+`", "status": "pending"}`)
	}

	w, decoded := doJSON(t, app, http.MethodGet, "/api/v1/tasks", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tasks list", decoded["message"])

	items := decoded["data"].([]any)
	require.Len(t, items, 3)

	var ids []float64
	for _, item := range items {
		ids = append(ids, item.(map[string]any)["id"].(float64))
	}
	assert.Equal(t, []float64{3, 2, 1}, ids)
}

func TestListTasksEmpty(t *testing.T) {
	app := newTestHandler()

	w, decoded := doJSON(t, app, http.MethodGet, "/api/v1/tasks", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decoded["data"])
}

func TestGetTask(t *testing.T) {
	app := newTestHandler()
	created := createTask(t, app, `{"title": "read me", "status": "in_progress"}`)

	w, decoded := doJSON(t, app, http.MethodGet, "/api/v1/tasks/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task detail", decoded["message"])
	assert.Equal(t, created, decoded["data"])

	// Reads are idempotent: a second read returns the same representation.
	_, again := doJSON(t, app, http.MethodGet, "/api/v1/tasks/1", "")
	assert.Equal(t, decoded, again)
}

func TestGetTaskNotFound(t *testing.T) {
	app := newTestHandler()

	tests := []struct {
		name   string
		target string
	}{
		{name: "unknown id", target: "/api/v1/tasks/99"},
		{name: "non numeric id", target: "/api/v1/tasks/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, decoded := doJSON(t, app, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "error", decoded["type"])
			assert.Equal(t, "Entity not found", decoded["message"])
			assert.Equal(t, map[string]any{"model": "Task"}, decoded["data"])
		})
	}
}

func TestCreateTaskValidation(t *testing.T) {
	app := newTestHandler()

	tests := []struct {
		name            string
		body            string
		expectedFields  []string
		expectedMessage string
	}{
		{
			name:            "missing everything",
			body:            `{}`,
			expectedFields:  []string{"title", "status"},
			expectedMessage: "The status field is required.; The title field is required.",
		},
		{
			name:            "empty title",
			body:            `{"title": "", "status": "pending"}`,
			expectedFields:  []string{"title"},
			expectedMessage: "The title field is required.",
		},
		{
			name:            "title too long",
			body:            `{"title": "` + strings.Repeat("x", 256) + `", "status": "pending"}`,
			expectedFields:  []string{"title"},
			expectedMessage: "The title field must not be greater than 255 characters.",
		},
		{
			name:            "title wrong type",
			body:            `{"title": 123, "status": "pending"}`,
			expectedFields:  []string{"title"},
			expectedMessage: "The title field must be a string.",
		},
		{
			name:            "description wrong type",
			body:            `{"title": "ok", "description": 7, "status": "pending"}`,
			expectedFields:  []string{"description"},
			expectedMessage: "The description field must be a string.",
		},
		{
			name:            "status outside the set",
			body:            `{"title": "ok", "status": "archived"}`,
			expectedFields:  []string{"status"},
			expectedMessage: "The selected status is invalid.",
		},
		{
			name:            "status wrong type",
			body:            `{"title": "ok", "status": true}`,
			expectedFields:  []string{"status"},
			expectedMessage: "The status field must be a string.",
		},
		{
			name:            "status null",
			body:            `{"title": "ok", "status": null}`,
			expectedFields:  []string{"status"},
			expectedMessage: "The status field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, decoded := doJSON(t, app, http.MethodPost, "/api/v1/tasks", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, "error", decoded["type"])
			assert.Equal(t, tt.expectedMessage, decoded["message"])

			data := decoded["data"].(map[string]any)
			fieldErrors := data["errors"].(map[string]any)
			require.Len(t, fieldErrors, len(tt.expectedFields))
			for _, field := range tt.expectedFields {
				assert.Contains(t, fieldErrors, field)
			}

			// The submitted body is echoed back.
			var submitted map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.body), &submitted))
			assert.Equal(t, submitted, data["request"])
		})
	}

	// Nothing was persisted by any of the rejected payloads.
	_, decoded := doJSON(t, app, http.MethodGet, "/api/v1/tasks", "")
	assert.Equal(t, []any{}, decoded["data"])
}

func TestCreateTaskMalformedJSON(t *testing.T) {
	app := newTestHandler()

	w, decoded := doJSON(t, app, http.MethodPost, "/api/v1/tasks", `{"title": "broken`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decoded["type"])
	assert.Equal(t, "Malformed JSON body", decoded["message"])
}

func TestUpdateTask(t *testing.T) {
	app := newTestHandler()
	createTask(t, app, `{"title": "before", "status": "pending"}`)

	w, decoded := doJSON(t, app, http.MethodPut, "/api/v1/tasks/1",
		`{"title": "after", "description": "now with notes", "status": "done"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task updated", decoded["message"])

	data := decoded["data"].(map[string]any)
	assert.Equal(t, "after", data["title"])
	assert.Equal(t, "now with notes", data["description"])
	assert.Equal(t, "done", data["status"])

	// A subsequent read reflects the update.
	_, detail := doJSON(t, app, http.MethodGet, "/api/v1/tasks/1", "")
	assert.Equal(t, data, detail["data"])
}

func TestUpdateTaskNotFound(t *testing.T) {
	app := newTestHandler()

	w, decoded := doJSON(t, app, http.MethodPut, "/api/v1/tasks/99",
		`{"title": "ghost", "status": "pending"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"model": "Task"}, decoded["data"])
}

func TestUpdateTaskValidation(t *testing.T) {
	app := newTestHandler()
	createTask(t, app, `{"title": "keep me", "status": "pending"}`)

	w, _ := doJSON(t, app, http.MethodPut, "/api/v1/tasks/1", `{"title": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The stored task is untouched.
	_, detail := doJSON(t, app, http.MethodGet, "/api/v1/tasks/1", "")
	assert.Equal(t, "keep me", detail["data"].(map[string]any)["title"])
}

func TestDeleteTask(t *testing.T) {
	app := newTestHandler()
	createTask(t, app, `{"title": "remove me", "status": "pending"}`)

	w, decoded := doJSON(t, app, http.MethodDelete, "/api/v1/tasks/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decoded["type"])
	assert.Equal(t, "Task deleted", decoded["message"])
	assert.Nil(t, decoded["data"])

	// Gone afterward.
	w, _ = doJSON(t, app, http.MethodGet, "/api/v1/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, app, http.MethodDelete, "/api/v1/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
