package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/domain"
	"github.com/taskapi/backend/internal/infrastructure/logger"
)

type memoryTaskRepository struct {
	tasks map[string]*domain.Task
	order []string
	mu    sync.RWMutex
	log   *logger.Logger
	now   func() time.Time
}

// NewMemoryTaskRepository keeps tasks in process memory. Contents are lost on
// restart.
func NewMemoryTaskRepository(log *logger.Logger) ports.TaskRepository {
	return &memoryTaskRepository{
		tasks: make(map[string]*domain.Task),
		log:   log,
		now:   time.Now,
	}
}

func (r *memoryTaskRepository) Create(ctx context.Context, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := domain.NewTask(patch)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)

	r.log.Infow("task_repo_create_ok", "id", task.ID)
	// Return a copy so callers cannot mutate stored state
	taskCopy := *task
	return &taskCopy, nil
}

func (r *memoryTaskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, id := range r.order {
		tasks = append(tasks, *r.tasks[id])
	}
	return tasks, nil
}

func (r *memoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[key]
	if !exists {
		return nil, domain.ErrTaskNotFound
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (r *memoryTaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if err := patch.Validate(false); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, exists := r.tasks[key]
	if !exists {
		return nil, domain.ErrTaskNotFound
	}

	updated := *task
	updated.Apply(patch)
	updated.UpdatedAt = r.now().UTC()
	r.tasks[key] = &updated

	r.log.Infow("task_repo_update_ok", "id", key)
	return &updated, nil
}

func (r *memoryTaskRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseUUID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[key]; !exists {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, key)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Infow("task_repo_delete_ok", "id", key)
	return nil
}

// parseUUID normalises id to the canonical UUID string form.
func parseUUID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
