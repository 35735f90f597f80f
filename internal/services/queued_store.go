package services

import (
	"context"

	model "todo-list.com/todo-list/internal/models"
	"todo-list.com/todo-list/internal/queue"
)

// queuedStore funnels every mutation through a single writer queue so a
// reconciliation create and a user delete of the same id cannot interleave.
type queuedStore struct {
	TaskStore
	writer *queue.Serial
}

func (s queuedStore) Create(ctx context.Context, task model.Task) error {
	return s.writer.Run(ctx, func(ctx context.Context) error {
		return s.TaskStore.Create(ctx, task)
	})
}

func (s queuedStore) Update(ctx context.Context, id int16, fields model.TaskFields) error {
	return s.writer.Run(ctx, func(ctx context.Context) error {
		return s.TaskStore.Update(ctx, id, fields)
	})
}

func (s queuedStore) Delete(ctx context.Context, id int16) error {
	return s.writer.Run(ctx, func(ctx context.Context) error {
		return s.TaskStore.Delete(ctx, id)
	})
}
