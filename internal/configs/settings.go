package config

import (
	"gorm.io/gorm"

	"todo-list.com/todo-list/internal/settings"
)

// NewFlagStore picks the settings backend. The returned close function
// releases the Redis connection when one was opened.
func NewFlagStore(cfg Config, db *gorm.DB) (settings.FlagStore, func()) {
	if cfg.SettingsBackend == SettingsBackendRedis {
		client := NewRedisClient(cfg.RedisAddr)
		return settings.NewRedisFlagStore(client, cfg.RedisKeyPrefix), client.Close
	}

	return settings.NewSQLiteFlagStore(db), func() {}
}
