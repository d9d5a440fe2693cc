package adapter

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient cria o cliente Redis usado pelo stream de eventos. O
// endereço pode ser sobrescrito via REDIS_ADDR.
func NewRedisClient() redis.UniversalClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}
