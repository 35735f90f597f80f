package config

import (
	"os"

	"github.com/charmbracelet/log"
)

func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "todo",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown LOG_LEVEL, using info", "value", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
