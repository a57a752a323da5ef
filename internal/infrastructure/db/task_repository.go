package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/domain"
	"github.com/taskapi/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := domain.NewTask(patch)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "title", task.Title, "error", err)
		return nil, err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID)
	return task, nil
}

func (r *taskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_failed", "error", err)
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	r.log.Infow("task_repo_list_ok", "count", len(tasks))
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		r.log.Errorw("task_repo_get_failed", "id", key, "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if err := patch.Validate(false); err != nil {
		return nil, err
	}

	var task domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, "id = ?", key).Error; err != nil {
			return err
		}
		task.Apply(patch)
		task.UpdatedAt = time.Now().UTC()
		return tx.Save(&task).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		r.log.Errorw("task_repo_update_failed", "id", key, "error", err)
		return nil, err
	}

	r.log.Infow("task_repo_update_ok", "id", key)
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseUUID(id)
	if !ok {
		return domain.ErrTaskNotFound
	}

	res := r.db.WithContext(ctx).Where("id = ?", key).Delete(&domain.Task{})
	if res.Error != nil {
		r.log.Errorw("task_repo_delete_failed", "id", key, "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	r.log.Infow("task_repo_delete_ok", "id", key)
	return nil
}
