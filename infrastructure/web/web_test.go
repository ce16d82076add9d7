package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrazmi/taskapi/infrastructure/web"
)

func TestHandlerRoutesByMethod(t *testing.T) {
	app := web.NewWebHandler(web.HandlerOptions{})

	app.GET("/things/{thing_id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse(web.Param(r, "thing_id"), http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/things/42", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	// Same path, unregistered method.
	r = httptest.NewRequest(http.MethodDelete, "/things/42", nil)
	w = httptest.NewRecorder()
	app.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouteGroupPrefixes(t *testing.T) {
	app := web.NewWebHandler(web.HandlerOptions{})

	ok := func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse("ok", http.StatusOK)
	}

	v1 := app.Group("/api/v1")
	v1.GET("/items", ok)

	nested := v1.Group("/admin")
	nested.GET("/items", ok)

	for _, target := range []string{"/api/v1/items", "/api/v1/admin/items"} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestMiddlewareOrdering(t *testing.T) {
	var calls []string
	record := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				calls = append(calls, name)
				return next(ctx, r)
			}
		}
	}

	app := web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(record("global")),
	)
	app.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		calls = append(calls, "handler")
		return web.NewNoResponse()
	}, record("route"))

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	app.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, []string{"global", "route", "handler"}, calls)
}

func TestRespondStatusSelection(t *testing.T) {
	tests := []struct {
		name         string
		resp         web.Encoder
		expectedCode int
		expectedBody string
	}{
		{
			name:         "encoder with status",
			resp:         web.NewTextResponse("made", http.StatusCreated),
			expectedCode: http.StatusCreated,
			expectedBody: "made",
		},
		{
			name:         "json response defaults to 200",
			resp:         web.NewJSONResponse(map[string]string{"a": "b"}),
			expectedCode: http.StatusOK,
			expectedBody: `{"a":"b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, web.Respond(context.Background(), w, tt.resp))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRespondNoResponseWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, web.Respond(context.Background(), w, web.NewNoResponse()))

	assert.Empty(t, w.Body.String())
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x"}`))

	var p payload
	require.NoError(t, web.Decode(r, &p))
	assert.Equal(t, "x", p.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, web.Decode(r, &p))
}
