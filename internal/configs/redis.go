package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the Redis settings store. Client-side caching
// is off: flags are read once per launch.
func NewRedisClient(addr string) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			ClientName:   "todo-list",
			DisableCache: true,
		},
	)
	if err != nil {
		log.Fatalf("failed to connect to redis settings store at %s: %v", addr, err)
	}

	return redisClient
}
