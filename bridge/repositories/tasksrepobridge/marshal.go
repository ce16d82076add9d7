package tasksrepobridge

import (
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/sdk/validation"
)

// MarshalToBridge converts a core model to the bridge model.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		CreatedAt:   validation.FormatTimeToString(task.CreatedAt),
		UpdatedAt:   validation.FormatTimeToString(task.UpdatedAt),
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalInputToRepository converts validated bridge input to the repository DTO
func MarshalInputToRepository(input TaskInput) tasksrepo.TaskDTO {
	return tasksrepo.TaskDTO{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
}
