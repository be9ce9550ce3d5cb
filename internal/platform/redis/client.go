// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the session store.

Session records and their one-shot flash messages are volatile: every key
carries a TTL and logout removes them eagerly. The store relies on MULTI/EXEC
for token rotation and GETDEL for flash consumption, so Redis 6.2 or newer
is required.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client settings for a session workload: many tiny reads, few writes.
const (
	poolSize     = 10
	minIdleConns = 2
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient connects to redisURL and verifies the server answers.

Parameters:
  - ctx: context.Context (bounds the initial ping)
  - redisURL: redis:// or rediss:// URL
  - logger: *slog.Logger

Returns:
  - *redis.Client: Connected client
  - error: URL or connectivity failures
*/
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := parseOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)

	return client, nil
}

// parseOptions reads redisURL and applies the session-store tuning.
func parseOptions(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_url_invalid: %w", err)
	}

	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	return options, nil
}

// Ping reports whether the server answers within pingTimeout.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}

	return nil
}
