package ports

import (
	"context"
	"time"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context, userID uint64, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error)
	CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID uint64, status domain.TaskStatus) error
	DeleteTask(ctx context.Context, userID, taskID uint64) error
	// ListDueTasks returns non-completed tasks with a due date inside
	// [from, to], ordered by due date then due time.
	ListDueTasks(ctx context.Context, userID uint64, from, to time.Time) ([]domain.Task, error)
	SearchTagNames(ctx context.Context, userID uint64, term string) ([]string, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, userID uint64, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error)
	CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	// UpdateTaskStatus returns the human-readable label of the new status.
	UpdateTaskStatus(ctx context.Context, userID, taskID uint64, status domain.TaskStatus) (string, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) error
	AutocompleteTags(ctx context.Context, userID uint64, term string) ([]string, error)
}
