package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	dto "todo-list.com/todo-list/internal/data_models"
	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/http/validators"
	model "todo-list.com/todo-list/internal/models"
	"todo-list.com/todo-list/internal/services"
)

type Handler struct {
	taskService *services.TaskService
	logger      *log.Logger

	closing   chan struct{}
	closeOnce sync.Once
}

func NewHandler(taskService *services.TaskService, logger *log.Logger) *Handler {
	return &Handler{
		taskService: taskService,
		logger:      logger,
		closing:     make(chan struct{}),
	}
}

// CloseStreams ends every open event stream. Safe to call more than once.
func (h *Handler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.closing) })
}

func (h *Handler) SyncTasks(c echo.Context) error {
	tasks, err := h.taskService.ReconcileOnLaunch(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return listResponse(c, http.StatusOK, tasks)
}

// ListTasks returns the stored tasks sorted by date, filtered when a
// non-empty q parameter is given.
func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return h.fail(err)
	}
	return listResponse(c, http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(err)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	fields, err := bindTaskRequest(c)
	if err != nil {
		return h.fail(err)
	}

	task, tasks, err := h.taskService.CreateTask(c.Request().Context(), fields)
	if err != nil {
		return h.fail(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"task":  task,
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(err)
	}

	fields, err := bindTaskRequest(c)
	if err != nil {
		return h.fail(err)
	}

	tasks, err := h.taskService.UpdateTask(c.Request().Context(), id, fields)
	if err != nil {
		return h.fail(err)
	}

	return listResponse(c, http.StatusOK, tasks)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(err)
	}

	tasks, err := h.taskService.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(err)
	}

	return listResponse(c, http.StatusOK, tasks)
}

// StreamEvents pushes change notifications as server-sent events until
// the client disconnects or the server starts shutting down.
func (h *Handler) StreamEvents(c echo.Context) error {
	changes, unsubscribe := h.taskService.Subscribe()
	defer unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.closing:
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}

			data, err := json.Marshal(change)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Kind, data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func (h *Handler) fail(err error) error {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "status", status, "err", err)
	}
	return echo.NewHTTPError(status, apperrors.Message(err))
}

func listResponse(c echo.Context, status int, tasks []model.Task) error {
	return c.JSON(status, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func parseTaskID(c echo.Context) (int16, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 16)
	if err != nil {
		return 0, apperrors.ErrInvalidTaskID
	}
	return int16(id), nil
}

func bindTaskRequest(c echo.Context) (model.TaskFields, error) {
	var req dto.TaskRequestData
	if err := c.Bind(&req); err != nil {
		return model.TaskFields{}, apperrors.ErrInvalidJSON
	}
	return validators.ValidateTaskRequest(&req)
}
