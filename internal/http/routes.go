package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "todo-list.com/todo-list/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Server.RegisterOnShutdown(h.CloseStreams)

	e.POST("/tasks/sync", h.SyncTasks)
	e.GET("/tasks/events", h.StreamEvents)

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
}
