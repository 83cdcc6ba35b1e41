package service

import (
	"context"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint64, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx, userID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, userID, taskID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	input.TagNames = domain.NormalizeTagNames(input.TagNames)
	if !input.Status.Valid() {
		input.Status = domain.TaskStatusPending
	}
	return s.taskRepository.CreateTask(ctx, userID, input)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}
	if input.TagNamesSet {
		input.TagNames = domain.NormalizeTagNames(input.TagNames)
	}
	return s.taskRepository.UpdateTask(ctx, userID, taskID, input)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, userID, taskID uint64, status domain.TaskStatus) (string, error) {
	// Reject unknown values before touching storage so the row stays as is.
	if !status.Valid() {
		return "", domain.ErrInvalidStatus
	}
	if err := s.taskRepository.UpdateTaskStatus(ctx, userID, taskID, status); err != nil {
		return "", err
	}
	return status.Label(), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	return s.taskRepository.DeleteTask(ctx, userID, taskID)
}

func (s *TaskService) AutocompleteTags(ctx context.Context, userID uint64, term string) ([]string, error) {
	if term == "" {
		return []string{}, nil
	}
	return s.taskRepository.SearchTagNames(ctx, userID, term)
}

var _ ports.TaskService = (*TaskService)(nil)
