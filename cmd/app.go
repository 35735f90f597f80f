package cmd

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	config "todo-list.com/todo-list/internal/configs"
	"todo-list.com/todo-list/internal/events"
	"todo-list.com/todo-list/internal/fetcher"
	repository "todo-list.com/todo-list/internal/repositories"
	"todo-list.com/todo-list/internal/services"
)

type app struct {
	cfg         config.Config
	logger      *log.Logger
	taskService *services.TaskService
	closeFlags  func()
}

// bootstrap wires the store, fetcher, settings store and task service
// from the environment.
func bootstrap() *app {
	envErr := godotenv.Load(envFile)

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	if envErr != nil {
		logger.Info("dotenv file not loaded, using environment variables", "file", envFile, "err", envErr)
	}

	database := config.NewDatabaseClient(cfg.DatabaseDSN)
	changes := events.NewBroadcaster(32)
	taskRepo := repository.NewTaskRepository(database, changes)

	flags, closeFlags := config.NewFlagStore(cfg, database)

	client := fetcher.NewClient(
		cfg.RemoteTodosURL,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
		cfg.FetchPageSize,
		logger,
	)

	taskService := services.NewTaskService(taskRepo, client, flags, changes, logger)

	return &app{
		cfg:         cfg,
		logger:      logger,
		taskService: taskService,
		closeFlags:  closeFlags,
	}
}

func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second,
	)
	defer cancel()

	a.taskService.Shutdown(ctx)
	a.closeFlags()
}
