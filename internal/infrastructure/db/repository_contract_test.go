package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

// repoFactory returns a fresh, empty repository plus an id that is well formed
// for that store but guaranteed not to exist.
type repoFactory func(t *testing.T) (ports.TaskRepository, string)

func runTaskRepositoryContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("CreateAppliesDefaults", func(t *testing.T) {
		repo, _ := newRepo(t)
		task, err := repo.Create(ctx, domain.TaskPatch{Title: strPtr("Test Task")})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if task.ID == "" {
			t.Fatal("Expected generated id")
		}
		if task.Status != domain.TaskStatusPending || task.Priority != domain.TaskPriorityMedium {
			t.Errorf("Expected defaults pending/medium, got %s/%s", task.Status, task.Priority)
		}
		if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
			t.Errorf("Expected createdAt == updatedAt on insert, got %v / %v", task.CreatedAt, task.UpdatedAt)
		}

		got, err := repo.GetByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Title != "Test Task" {
			t.Errorf("Expected title 'Test Task', got '%s'", got.Title)
		}
	})

	t.Run("CreateKeepsSuppliedFields", func(t *testing.T) {
		repo, _ := newRepo(t)
		due := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
		task, err := repo.Create(ctx, domain.TaskPatch{
			Title:       strPtr("New Task"),
			Description: strPtr("New Description"),
			Status:      strPtr("in-progress"),
			Priority:    strPtr("high"),
			DueDate:     &due,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Description != "New Description" || got.Status != domain.TaskStatusInProgress || got.Priority != domain.TaskPriorityHigh {
			t.Errorf("Unexpected stored fields: %+v", got)
		}
		if got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Errorf("Expected due date %v, got %v", due, got.DueDate)
		}
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		repo, _ := newRepo(t)
		cases := []domain.TaskPatch{
			{Description: strPtr("Invalid Task"), Status: strPtr("pending")},
			{Title: strPtr("")},
			{Title: strPtr("ok"), Status: strPtr("archived")},
			{Title: strPtr("ok"), Priority: strPtr("urgent")},
		}
		for _, patch := range cases {
			_, err := repo.Create(ctx, patch)
			if !errors.Is(err, domain.ErrInvalidTask) {
				t.Errorf("Expected validation error for %+v, got %v", patch, err)
			}
		}
		tasks, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("Expected no persisted tasks, got %d", len(tasks))
		}
	})

	t.Run("GetAllEmptyIsNotNil", func(t *testing.T) {
		repo, _ := newRepo(t)
		tasks, err := repo.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if tasks == nil {
			t.Error("Expected empty slice, got nil")
		}
	})

	t.Run("UnknownAndMalformedIDs", func(t *testing.T) {
		repo, missing := newRepo(t)
		if _, err := repo.Create(ctx, domain.TaskPatch{Title: strPtr("keep")}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		for _, id := range []string{missing, "not-an-id", ""} {
			if _, err := repo.GetByID(ctx, id); !errors.Is(err, domain.ErrTaskNotFound) {
				t.Errorf("GetByID(%q): expected not found, got %v", id, err)
			}
			if _, err := repo.Update(ctx, id, domain.TaskPatch{Title: strPtr("x")}); !errors.Is(err, domain.ErrTaskNotFound) {
				t.Errorf("Update(%q): expected not found, got %v", id, err)
			}
			if err := repo.Delete(ctx, id); !errors.Is(err, domain.ErrTaskNotFound) {
				t.Errorf("Delete(%q): expected not found, got %v", id, err)
			}
		}

		tasks, _ := repo.GetAll(ctx)
		if len(tasks) != 1 {
			t.Errorf("Expected store count unchanged at 1, got %d", len(tasks))
		}
	})

	t.Run("UpdateIsPartial", func(t *testing.T) {
		repo, _ := newRepo(t)
		due := time.Date(2031, 1, 1, 9, 30, 0, 0, time.UTC)
		created, err := repo.Create(ctx, domain.TaskPatch{
			Title:       strPtr("Test Task"),
			Description: strPtr("Test Description"),
			Priority:    strPtr("low"),
			DueDate:     &due,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		time.Sleep(5 * time.Millisecond)
		updated, err := repo.Update(ctx, created.ID, domain.TaskPatch{Status: strPtr("completed")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.Status != domain.TaskStatusCompleted {
			t.Errorf("Expected status completed, got %s", updated.Status)
		}

		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Title != created.Title || got.Description != created.Description || got.Priority != created.Priority {
			t.Errorf("Omitted fields changed: before %+v after %+v", created, got)
		}
		if got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Errorf("Due date changed: %v", got.DueDate)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("createdAt changed: %v -> %v", created.CreatedAt, got.CreatedAt)
		}
		if !got.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("Expected updatedAt to advance: %v -> %v", created.UpdatedAt, got.UpdatedAt)
		}
	})

	t.Run("UpdateStatusAnyDirection", func(t *testing.T) {
		repo, _ := newRepo(t)
		created, _ := repo.Create(ctx, domain.TaskPatch{Title: strPtr("flip"), Status: strPtr("completed")})
		got, err := repo.Update(ctx, created.ID, domain.TaskPatch{Status: strPtr("pending")})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.Status != domain.TaskStatusPending {
			t.Errorf("Expected status pending, got %s", got.Status)
		}
	})

	t.Run("UpdateRejectsInvalidEnum", func(t *testing.T) {
		repo, _ := newRepo(t)
		created, _ := repo.Create(ctx, domain.TaskPatch{Title: strPtr("stay")})
		_, err := repo.Update(ctx, created.ID, domain.TaskPatch{Title: strPtr("changed"), Priority: strPtr("critical")})
		if !errors.Is(err, domain.ErrInvalidTask) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		got, _ := repo.GetByID(ctx, created.ID)
		if got.Title != "stay" || got.Priority != domain.TaskPriorityMedium {
			t.Errorf("Record changed after rejected update: %+v", got)
		}
	})

	t.Run("DeleteIsOneShot", func(t *testing.T) {
		repo, _ := newRepo(t)
		created, _ := repo.Create(ctx, domain.TaskPatch{Title: strPtr("Test Task")})
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("first Delete failed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("Expected not found on second delete, got %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("Expected not found after delete, got %v", err)
		}
	})

	t.Run("ListRoundTrip", func(t *testing.T) {
		repo, _ := newRepo(t)
		const n = 4
		ids := make([]string, 0, n)
		for i := 0; i < n; i++ {
			task, err := repo.Create(ctx, domain.TaskPatch{Title: strPtr("task")})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			ids = append(ids, task.ID)
		}
		tasks, _ := repo.GetAll(ctx)
		if len(tasks) != n {
			t.Fatalf("Expected %d tasks, got %d", n, len(tasks))
		}
		for _, id := range ids {
			if err := repo.Delete(ctx, id); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
		}
		tasks, _ = repo.GetAll(ctx)
		if len(tasks) != 0 {
			t.Errorf("Expected 0 tasks, got %d", len(tasks))
		}
	})
}
