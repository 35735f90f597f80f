package services

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	model "todo-list.com/todo-list/internal/models"
)

// SortByDateDescending returns a sorted copy, most recent first. Tasks
// without a creation date rank after every dated task. The sort is stable.
func SortByDateDescending(tasks []model.Task) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	slices.SortStableFunc(sorted, compareByDateDesc)
	return sorted
}

func compareByDateDesc(a, b model.Task) int {
	switch {
	case a.CreationDate == nil && b.CreationDate == nil:
		return 0
	case a.CreationDate == nil:
		return 1
	case b.CreationDate == nil:
		return -1
	default:
		return b.CreationDate.Compare(*a.CreationDate)
	}
}

// Search keeps tasks whose title or description contains query, ignoring
// case, and returns them sorted by date. An empty query keeps everything.
func Search(tasks []model.Task, query string) []model.Task {
	if query == "" {
		return SortByDateDescending(tasks)
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matches := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(fold.String(task.Title), needle) {
			matches = append(matches, task)
			continue
		}
		if task.DescriptionText != nil && strings.Contains(fold.String(*task.DescriptionText), needle) {
			matches = append(matches, task)
		}
	}

	return SortByDateDescending(matches)
}
