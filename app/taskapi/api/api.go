// Package api mounts the public HTTP surface.
package api

import (
	"context"
	"net/http"

	"github.com/jrazmi/taskapi/app/taskapi/config"
	"github.com/jrazmi/taskapi/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskapi/bridge/scaffolding/apiresponse"
	"github.com/jrazmi/taskapi/bridge/scaffolding/errs"
	"github.com/jrazmi/taskapi/infrastructure/web"
)

// AddHandlers registers all API routes on the handler.
func AddHandlers(app *web.WebHandler, cfg config.TaskAPI) {
	app.GET("/health", healthHandler(cfg))

	group := app.Group("/api/v1")

	tasksrepobridge.AddHttpRoutes(group, tasksrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.TaskRepository,
	})
}

// healthHandler is a liveness probe that also verifies the backing store.
func healthHandler(cfg config.TaskAPI) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(ctx); err != nil {
				return errs.NewHTTP(http.StatusServiceUnavailable, "Store unavailable")
			}
		}

		return apiresponse.Info("Application up", map[string]any{
			"build": cfg.Build,
			"store": "up",
		})
	}
}
