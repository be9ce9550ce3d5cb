// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	options, err := parseOptions("redis://localhost:6379/3")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", options.Addr)
	assert.Equal(t, 3, options.DB)
	assert.Equal(t, poolSize, options.PoolSize)
	assert.Equal(t, ioTimeout, options.ReadTimeout)

	_, err = parseOptions("http://localhost")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := NewClient(context.Background(), "redis://"+server.Addr()+"/0", logger)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	server.Close()
	assert.Error(t, Ping(context.Background(), client))
}
