package domain

import (
	"time"
)

// ==================== ENUMS ====================

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ==================== ENTITIES ====================

// Task is the single managed resource. ID is opaque to callers: each store
// picks its own native key format (ObjectID hex, UUID).
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	Priority    TaskPriority `gorm:"size:20;not null;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

// NewTask validates p as a creation payload and returns an unsaved task with
// defaults applied. ID and timestamps are left to the store.
func NewTask(p TaskPatch) (*Task, error) {
	if err := p.Validate(true); err != nil {
		return nil, err
	}
	task := &Task{
		Status:   TaskStatusPending,
		Priority: TaskPriorityMedium,
	}
	task.Apply(p)
	return task, nil
}

// Apply copies the supplied fields of p onto t. It does not validate.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = normalizeTitle(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = TaskStatus(*p.Status)
	}
	if p.Priority != nil {
		t.Priority = TaskPriority(*p.Priority)
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
}
