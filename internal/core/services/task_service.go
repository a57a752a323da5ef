package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/domain"
	"github.com/taskapi/backend/internal/infrastructure/logger"
)

type TaskServiceConfig struct {
	Repository ports.TaskRepository
	Logger     *logger.Logger
}

type taskService struct {
	repo   ports.TaskRepository
	logger *logger.Logger
}

func NewTaskService(cfg TaskServiceConfig) ports.TaskService {
	return &taskService{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}
}

func (s *taskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, s.mapError("list", "", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("get", id, err)
	}
	return task, nil
}

func (s *taskService) CreateTask(ctx context.Context, patch domain.TaskPatch) (*domain.Task, error) {
	// Title is checked here as well so a missing title never reaches the store.
	if patch.Title == nil || strings.TrimSpace(*patch.Title) == "" {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "title", Message: "title is required"},
		}}
	}

	task, err := s.repo.Create(ctx, patch)
	if err != nil {
		return nil, s.mapError("create", "", err)
	}
	s.logger.Infow("task_created", "id", task.ID, "status", task.Status, "priority", task.Priority)
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.mapError("update", id, err)
	}
	s.logger.Infow("task_updated", "id", task.ID, "status", task.Status)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError("delete", id, err)
	}
	s.logger.Infow("task_deleted", "id", id)
	return nil
}

// mapError translates a store error into ErrTaskNotFound, a
// *domain.ValidationError or ErrStoreUnavailable.
func (s *taskService) mapError(op, id string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.As(err, &verr):
		return verr
	}
	s.logger.Errorw("task_store_failed", "op", op, "id", id, "error", err)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
