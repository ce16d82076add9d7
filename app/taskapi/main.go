package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jrazmi/taskapi/app/taskapi/api"
	"github.com/jrazmi/taskapi/app/taskapi/config"
	"github.com/jrazmi/taskapi/bridge/scaffolding/mid"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskapi/infrastructure/postgresdb"
	"github.com/jrazmi/taskapi/infrastructure/web"
	"github.com/jrazmi/taskapi/sdk/environment"
	"github.com/jrazmi/taskapi/sdk/logger"
	"github.com/jrazmi/taskapi/sdk/telemetry"
)

var build = "develop"
var appName = "TASKAPI"

func main() {
	godotenv.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuring logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	// :*: START STORE :*:
	var storer tasksrepo.Storer
	var healthCheck func(ctx context.Context) error

	switch store := environment.GetPrefixEnvOrDefault(appName, "STORE", "postgres"); store {
	case "memory":
		log.InfoContext(ctx, "startup", "status", "using in-memory store")
		storer = tasksmemstore.NewStore()

	case "postgres":
		pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer func() {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			pg.Close()
		}()

		if err := postgresdb.Migrate(ctx, pg); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		storer = taskspgxstore.NewStore(log, pg)
		healthCheck = func(ctx context.Context) error {
			return postgresdb.StatusCheck(ctx, pg)
		}

	default:
		return fmt.Errorf("unknown store %q", store)
	}
	// END STORE //

	// REPOSITORIES //
	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	taskRepository := tasksrepo.NewRepository(log, storer)
	// END REPOSITORIES //

	debug := environment.GetPrefixEnvOrDefault(appName, "ENABLE_DEBUG", "false") == "true"

	siteCfg := config.TaskAPI{
		Build:          build,
		Debug:          debug,
		Log:            log,
		TaskRepository: taskRepository,
		HealthCheck:    healthCheck,
	}

	handler, err := webHandler(log, siteCfg)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func webHandler(log *logger.Logger, cfg config.TaskAPI) (http.Handler, error) {
	app, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(log.Logger),
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(
			mid.Logger(log),
			mid.Errors(log, cfg.Debug),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	if err != nil {
		return nil, err
	}

	api.AddHandlers(app, cfg)

	return app, nil
}
