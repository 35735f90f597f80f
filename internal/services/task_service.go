package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/events"
	"todo-list.com/todo-list/internal/ids"
	model "todo-list.com/todo-list/internal/models"
	"todo-list.com/todo-list/internal/queue"
	"todo-list.com/todo-list/internal/settings"
)

// maxIDAttempts bounds random id generation when ids collide.
const maxIDAttempts = 8

type TaskService struct {
	store      TaskStore
	fetcher    TaskFetcher
	flags      settings.FlagStore
	reconciler *Reconciler
	changes    *events.Broadcaster
	logger     *log.Logger
	newID      func() int16

	network *queue.Serial
	writer  *queue.Serial
	display *queue.Serial
}

func NewTaskService(
	store TaskStore,
	fetcher TaskFetcher,
	flags settings.FlagStore,
	changes *events.Broadcaster,
	logger *log.Logger,
) *TaskService {
	if changes == nil {
		changes = events.NewBroadcaster(16)
	}

	writer := queue.NewSerial("storage", 64, logger)
	serialized := queuedStore{TaskStore: store, writer: writer}

	return &TaskService{
		store:      serialized,
		fetcher:    fetcher,
		flags:      flags,
		reconciler: NewReconciler(serialized, logger),
		changes:    changes,
		logger:     logger,
		newID:      ids.NewTaskID,
		network:    queue.NewSerial("network", 4, logger),
		writer:     writer,
		display:    queue.NewSerial("display", 16, logger),
	}
}

// ReconcileOnLaunch imports the remote seed batch the first time it runs
// on an installation and returns the merged, sorted list. Once the
// first-launch flag is set it only reads the local store.
func (s *TaskService) ReconcileOnLaunch(ctx context.Context) ([]model.Task, error) {
	type result struct {
		tasks []model.Task
		err   error
	}

	done := make(chan result, 1)
	if err := s.network.Go(func() {
		tasks, err := s.reconcileOnLaunch(ctx)
		done <- result{tasks: tasks, err: err}
	}); err != nil {
		return nil, err
	}

	select {
	case r := <-done:
		return r.tasks, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReconcileOnLaunchAsync runs ReconcileOnLaunch on the network queue and
// delivers the result to done on the display queue.
func (s *TaskService) ReconcileOnLaunchAsync(ctx context.Context, done func([]model.Task, error)) error {
	return s.network.Go(func() {
		tasks, err := s.reconcileOnLaunch(ctx)
		if derr := s.display.Go(func() { done(tasks, err) }); derr != nil {
			s.logger.Warn("dropping reconciliation result", "err", derr)
		}
	})
}

func (s *TaskService) reconcileOnLaunch(ctx context.Context) ([]model.Task, error) {
	synced, err := s.flags.IsSet(ctx, settings.FirstLaunchKey)
	if err != nil {
		s.logger.Warn("could not read first-launch flag, skipping remote sync", "err", err)
		return s.RefreshFromStore(ctx)
	}

	if synced {
		s.logger.Debug("initial sync already completed, skipping remote fetch")
		return s.RefreshFromStore(ctx)
	}

	batch, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		s.logger.Error("remote fetch failed, showing local tasks", "err", err)
		return s.RefreshFromStore(ctx)
	}

	local, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	local = dedupeByID(local)
	pending := len(uniqueNew(dedupeByID(batch.Tasks), local))
	merged := s.reconciler.Reconcile(ctx, batch.Tasks, local)

	// Leave the flag unset when nothing new could be stored so the next
	// launch retries the import.
	if added := len(merged) - len(local); pending > 0 && added == 0 {
		s.logger.Warn("no fetched task could be stored, initial sync will be retried", "pending", pending)
		return SortByDateDescending(merged), nil
	}

	if err := s.flags.Set(ctx, settings.FirstLaunchKey, settings.FirstLaunchValue); err != nil {
		s.logger.Error("failed to record first-launch flag", "err", err)
	}

	return SortByDateDescending(merged), nil
}

// ResetFirstLaunch clears the first-launch flag so the next launch
// imports the remote batch again.
func (s *TaskService) ResetFirstLaunch(ctx context.Context) error {
	return s.flags.Clear(ctx, settings.FirstLaunchKey)
}

func (s *TaskService) RefreshFromStore(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return SortByDateDescending(tasks), nil
}

func (s *TaskService) Search(ctx context.Context, text string) ([]model.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Search(tasks, text), nil
}

func (s *TaskService) GetTask(ctx context.Context, id int16) (*model.Task, error) {
	return s.store.FindByID(ctx, id)
}

// CreateTask stores a new task under a random id and returns it along
// with the refreshed list.
func (s *TaskService) CreateTask(ctx context.Context, fields model.TaskFields) (model.Task, []model.Task, error) {
	title, err := validateTitle(fields.Title)
	if err != nil {
		return model.Task{}, nil, err
	}

	task := model.Task{
		Title:           title,
		DescriptionText: fields.DescriptionText,
		CreationDate:    fields.CreationDate,
		IsCompleted:     fields.IsCompleted,
	}

	for attempt := 1; ; attempt++ {
		task.ID = s.newID()

		err = s.store.Create(ctx, task)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicateTaskID) || attempt == maxIDAttempts {
			return model.Task{}, nil, err
		}
		s.logger.Debug("random task id collided, retrying", "id", task.ID, "attempt", attempt)
	}

	tasks, err := s.RefreshFromStore(ctx)
	if err != nil {
		return model.Task{}, nil, err
	}
	return task, tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int16, fields model.TaskFields) ([]model.Task, error) {
	title, err := validateTitle(fields.Title)
	if err != nil {
		return nil, err
	}
	fields.Title = title

	if err := s.store.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.RefreshFromStore(ctx)
}

func (s *TaskService) DeleteTask(ctx context.Context, id int16) ([]model.Task, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.RefreshFromStore(ctx)
}

// Subscribe registers for change notifications. Call the returned
// function when the observer goes away.
func (s *TaskService) Subscribe() (<-chan events.Change, func()) {
	return s.changes.Subscribe()
}

// Shutdown drains the network queue first so pending reconciliation
// writes still reach the storage queue.
func (s *TaskService) Shutdown(ctx context.Context) {
	s.network.Shutdown(ctx)
	s.writer.Shutdown(ctx)
	s.display.Shutdown(ctx)
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperrors.ErrTitleRequired
	}
	return trimmed, nil
}
