package dto

import (
	"time"

	"github.com/taskapi/backend/internal/domain"
)

// TaskRequest is the body of create and update calls. Every field is
// optional at this layer; fields not listed here (including _id and
// createdAt) are ignored.
type TaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *TaskRequest) ToPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Details []string    `json:"details,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func Fail(message string, details ...string) Response {
	return Response{Success: false, Message: message, Details: details}
}
