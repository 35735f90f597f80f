package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/events"
	model "todo-list.com/todo-list/internal/models"
)

// TaskRepository is the durable owner of task records. Every successful
// mutation is announced on the change broadcaster.
type TaskRepository struct {
	db      *gorm.DB
	changes *events.Broadcaster
}

func NewTaskRepository(db *gorm.DB, changes *events.Broadcaster) *TaskRepository {
	return &TaskRepository{db: db, changes: changes}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var tasks []model.Task
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, classify(err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int16) (*model.Task, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) error {
	if err := r.ready(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return fmt.Errorf("create task %d: %w", task.ID, classify(err))
	}

	r.changes.Publish(events.Change{Kind: events.TaskCreated, TaskID: task.ID})
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, id int16, fields model.TaskFields) error {
	if err := r.ready(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":            fields.Title,
			"description_text": fields.DescriptionText,
			"creation_date":    fields.CreationDate,
			"is_completed":     fields.IsCompleted,
		})

	if res.Error != nil {
		return fmt.Errorf("update task %d: %w", id, classify(res.Error))
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("update task %d: %w", id, apperrors.ErrTaskNotFound)
	}

	r.changes.Publish(events.Change{Kind: events.TaskUpdated, TaskID: id})
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int16) error {
	if err := r.ready(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, classify(res.Error))
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("delete task %d: %w", id, apperrors.ErrTaskNotFound)
	}

	r.changes.Publish(events.Change{Kind: events.TaskDeleted, TaskID: id})
	return nil
}

func (r *TaskRepository) ready() error {
	if r == nil || r.db == nil {
		return apperrors.ErrStoreUnavailable
	}
	return nil
}

func classify(err error) error {
	var appErr *apperrors.Exception
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrTaskNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateTaskID
	default:
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
}
