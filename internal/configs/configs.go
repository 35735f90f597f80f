package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	SettingsBackendSQLite = "sqlite"
	SettingsBackendRedis  = "redis"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	SettingsBackend        string
	RedisAddr              string
	RedisKeyPrefix         string
	RemoteTodosURL         string
	FetchTimeoutSeconds    int
	FetchPageSize          int
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogLevel               string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		SettingsBackend:        getEnv("SETTINGS_BACKEND", SettingsBackendSQLite),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "todo:"),
		RemoteTodosURL:         getEnv("REMOTE_TODOS_URL", "https://dummyjson.com/todos"),
		FetchTimeoutSeconds:    getEnvAsInt("FETCH_TIMEOUT_SECONDS", 10),
		FetchPageSize:          getEnvAsInt("FETCH_PAGE_SIZE", 0),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.SettingsBackend != SettingsBackendSQLite && cfg.SettingsBackend != SettingsBackendRedis {
		log.Fatalf("SETTINGS_BACKEND must be %q or %q", SettingsBackendSQLite, SettingsBackendRedis)
	}
	if cfg.RemoteTodosURL == "" {
		log.Fatal("REMOTE_TODOS_URL must not be empty")
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		log.Fatal("FETCH_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.FetchPageSize < 0 {
		log.Fatal("FETCH_PAGE_SIZE must not be negative")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
