package database

import (
	"context"
	"fmt"
	"log"

	"github.com/tilakWebkorps/Healthy-meal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the redis instance named in the application config.
// Returns (nil, nil) when no redis address is configured; callers treat a nil
// client as "revocation store disabled".
func ConnectRedis() (*redis.Client, error) {
	addr := config.AppConfig.Redis.Addr
	if addr == "" {
		log.Println("INFO: [Database] No redis address configured, token revocation store disabled.")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.AppConfig.Redis.Password,
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("INFO: [Database] Connected to Redis.")
	return rdb, nil
}
