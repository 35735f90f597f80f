package services

import (
	"context"

	"github.com/charmbracelet/log"

	model "todo-list.com/todo-list/internal/models"
)

// Reconciler merges a remote batch into the local task set. Local tasks
// always win on id conflicts; only remote tasks with unseen ids are
// persisted and added.
type Reconciler struct {
	store  TaskStore
	logger *log.Logger
}

func NewReconciler(store TaskStore, logger *log.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logger,
	}
}

// Reconcile persists every remote task whose id is not in local and
// returns those tasks followed by local. A task whose create fails is
// logged and left out of the result.
func (r *Reconciler) Reconcile(ctx context.Context, remote, local []model.Task) []model.Task {
	local = dedupeByID(local)
	fresh := uniqueNew(dedupeByID(remote), local)

	persisted := make([]model.Task, 0, len(fresh))
	for _, task := range fresh {
		if err := r.store.Create(ctx, task); err != nil {
			r.logger.Error("failed to persist fetched task", "id", task.ID, "err", err)
			continue
		}
		persisted = append(persisted, task)
	}

	r.logger.Info("reconciled remote tasks",
		"remote", len(remote),
		"local", len(local),
		"added", len(persisted),
		"dropped", len(fresh)-len(persisted),
	)

	return append(persisted, local...)
}

// uniqueNew returns the remote tasks whose ids do not appear in local.
func uniqueNew(remote, local []model.Task) []model.Task {
	existing := make(map[int16]struct{}, len(local))
	for _, task := range local {
		existing[task.ID] = struct{}{}
	}

	fresh := make([]model.Task, 0, len(remote))
	for _, task := range remote {
		if _, ok := existing[task.ID]; ok {
			continue
		}
		fresh = append(fresh, task)
	}
	return fresh
}

// dedupeByID collapses repeated ids within one batch. The last occurrence
// wins and takes the position of the first.
func dedupeByID(tasks []model.Task) []model.Task {
	index := make(map[int16]int, len(tasks))
	out := make([]model.Task, 0, len(tasks))

	for _, task := range tasks {
		if pos, ok := index[task.ID]; ok {
			out[pos] = task
			continue
		}
		index[task.ID] = len(out)
		out = append(out, task)
	}
	return out
}
