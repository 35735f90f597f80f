package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpapi "todo-list.com/todo-list/internal/http"
	model "todo-list.com/todo-list/internal/models"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task HTTP API and runs the first-launch remote import in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.shutdown()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err := a.taskService.ReconcileOnLaunchAsync(ctx, func(tasks []model.Task, err error) {
			if err != nil {
				a.logger.Error("launch reconciliation failed", "err", err)
				return
			}
			a.logger.Info("launch reconciliation finished", "tasks", len(tasks))
		})
		if err != nil {
			return err
		}

		e := echo.New()
		e.HideBanner = true
		handler := httpapi.NewHandler(a.taskService, a.logger)
		httpapi.Register(e, handler, a.cfg.RateLimit)

		go func() {
			a.logger.Info("HTTP server listening", "addr", a.cfg.AppURL)
			if err := e.Start(a.cfg.AppURL); err != nil {
				a.logger.Info("server stopped", "reason", err)
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			a.logger.Error("HTTP server did not shut down cleanly", "err", err)
			return err
		}

		a.logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
