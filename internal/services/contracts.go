package services

import (
	"context"

	model "todo-list.com/todo-list/internal/models"
)

// TaskStore is the durable owner of task records.
type TaskStore interface {
	// List returns every persisted task in no particular order.
	List(ctx context.Context) ([]model.Task, error)

	FindByID(ctx context.Context, id int16) (*model.Task, error)

	// Create fails with ErrDuplicateTaskID when the id is already taken.
	Create(ctx context.Context, task model.Task) error

	// Update and Delete fail with ErrTaskNotFound for an unknown id.
	Update(ctx context.Context, id int16, fields model.TaskFields) error

	Delete(ctx context.Context, id int16) error
}

// TaskFetcher supplies the remote seed batch.
type TaskFetcher interface {
	FetchAll(ctx context.Context) (*model.TaskBatch, error)
}
