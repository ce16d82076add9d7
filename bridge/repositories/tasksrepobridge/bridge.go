package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/taskapi/bridge/scaffolding/apiresponse"
	"github.com/jrazmi/taskapi/bridge/scaffolding/errs"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/infrastructure/web"
	"github.com/jrazmi/taskapi/sdk/logger"
)

// bridge provides HTTP handlers for Task operations.
type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
}

// newBridge creates a new Task bridge
func newBridge(log *logger.Logger, taskRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:            log,
		taskRepository: taskRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	tasks, err := b.taskRepository.List(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return apiresponse.Success("Tasks list", MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	taskID, appErr := parseTaskID(r)
	if appErr != nil {
		return appErr
	}

	task, err := b.taskRepository.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, tasksrepo.ErrNotFound) {
			return errs.NewNotFound("Task")
		}
		return errs.New(errs.Internal, err)
	}

	return apiresponse.Success("Task detail", MarshalToBridge(task))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	input, appErr := decodeTaskInput(r)
	if appErr != nil {
		return appErr
	}

	task, err := b.taskRepository.Create(ctx, MarshalInputToRepository(input))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return apiresponse.SuccessWithStatus("Task created", MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	taskID, appErr := parseTaskID(r)
	if appErr != nil {
		return appErr
	}

	input, appErr := decodeTaskInput(r)
	if appErr != nil {
		return appErr
	}

	task, err := b.taskRepository.Update(ctx, taskID, MarshalInputToRepository(input))
	if err != nil {
		if errors.Is(err, tasksrepo.ErrNotFound) {
			return errs.NewNotFound("Task")
		}
		return errs.New(errs.Internal, err)
	}

	return apiresponse.Success("Task updated", MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	taskID, appErr := parseTaskID(r)
	if appErr != nil {
		return appErr
	}

	if err := b.taskRepository.Delete(ctx, taskID); err != nil {
		if errors.Is(err, tasksrepo.ErrNotFound) {
			return errs.NewNotFound("Task")
		}
		return errs.New(errs.Internal, err)
	}

	return apiresponse.Success("Task deleted", nil)
}

// parseTaskID reads the task_id path segment. A non-numeric id can never
// name a stored task, so it reports not found rather than a bad request.
func parseTaskID(r *http.Request) (int64, *errs.Error) {
	taskID, err := strconv.ParseInt(web.Param(r, "task_id"), 10, 64)
	if err != nil {
		return 0, errs.NewNotFound("Task")
	}
	return taskID, nil
}
