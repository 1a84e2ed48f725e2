package config

// Redis backs the optional HTTP response cache on the public browse
// endpoints.  The client is constructed from environment variables at
// startup; when the server cannot be reached the constructor returns
// nil and callers degrade gracefully by disabling caching.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_ADDR (host:port,
// default localhost:6379), REDIS_PASSWORD and REDIS_DB.  The server
// is pinged with a short timeout; nil is returned on failure so the
// application can run without Redis.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
