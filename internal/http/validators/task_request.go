package validators

import (
	"strings"
	"time"

	dto "todo-list.com/todo-list/internal/data_models"
	apperrors "todo-list.com/todo-list/internal/errors"
	model "todo-list.com/todo-list/internal/models"
)

func ValidateTaskRequest(r *dto.TaskRequestData) (model.TaskFields, error) {
	if strings.TrimSpace(r.Title) == "" {
		return model.TaskFields{}, apperrors.ErrTitleRequired
	}

	fields := model.TaskFields{
		Title:           r.Title,
		DescriptionText: r.Description,
		IsCompleted:     r.Completed,
	}

	if r.CreationDate != nil && *r.CreationDate != "" {
		date, err := time.Parse(time.RFC3339, *r.CreationDate)
		if err != nil {
			return model.TaskFields{}, apperrors.ErrInvalidDate
		}
		date = date.UTC()
		fields.CreationDate = &date
	}

	return fields, nil
}
