package services

import (
	"errors"

	"github.com/taskapi/backend/internal/domain"
)

// Task errors
var (
	ErrTaskNotFound     = errors.New("task: not found")
	ErrTaskInvalidInput = domain.ErrInvalidTask
	ErrStoreUnavailable = errors.New("task: store unavailable")
)
