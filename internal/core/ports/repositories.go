package ports

import (
	"context"

	"github.com/taskapi/backend/internal/domain"
)

// TaskRepository is the persistence boundary for tasks. Implementations
// return domain.ErrTaskNotFound for unknown or malformed ids and a
// *domain.ValidationError when a write violates the task schema.
type TaskRepository interface {
	Create(ctx context.Context, patch domain.TaskPatch) (*domain.Task, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
