package mid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jrazmi/taskapi/bridge/scaffolding/mid"
	"github.com/jrazmi/taskapi/infrastructure/web"
)

func serveWithCORS(t *testing.T, corsMw web.Middleware, origin string) *httptest.ResponseRecorder {
	t.Helper()

	app := web.NewWebHandler(web.HandlerOptions{})
	app.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse("pong", http.StatusOK)
	}, corsMw)

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)
	return w
}

func TestPublicCORS(t *testing.T) {
	w := serveWithCORS(t, mid.PublicCORS(), "http://somewhere.test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORSMatchesOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		expectedHeader string
	}{
		{name: "allowed origin echoed", origin: "http://allowed.test", expectedHeader: "http://allowed.test"},
		{name: "other origin gets nothing", origin: "http://denied.test", expectedHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithCORS(t, mid.CORS("http://allowed.test"), tt.origin)
			assert.Equal(t, tt.expectedHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSWithConfig(t *testing.T) {
	corsMw := mid.CORSWithConfig(mid.CORSConfig{
		Origins:     []string{"*"},
		Methods:     []string{"GET"},
		Headers:     []string{"Accept"},
		Credentials: true,
		MaxAge:      "3600",
	})

	w := serveWithCORS(t, corsMw, "http://somewhere.test")

	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}
