// Package config carries the assembled application dependencies handed to
// the route registration layer.
package config

import (
	"context"

	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/sdk/logger"
)

// TaskAPI holds everything the HTTP surface needs.
type TaskAPI struct {
	Build          string
	Debug          bool
	Log            *logger.Logger
	TaskRepository *tasksrepo.Repository

	// HealthCheck reports whether the backing store is reachable. Nil means
	// the store has no connectivity to probe.
	HealthCheck func(ctx context.Context) error
}
