package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the optional verification cache. Returns nil when
// REDIS_ADDR is unset; callers must treat a nil client as "cache disabled".
func ConnectRedis() *redis.Client {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis at %s unreachable, verification cache disabled: %v", addr, err)
		_ = client.Close()
		return nil
	}

	log.Printf("Redis verification cache enabled (%s)", addr)
	return client
}
