// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
//
// Records live under "session:data:<id>" and flashes under
// "session:flash:<id>", both with the session TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func recordKey(id string) string { return constants.RedisPrefixSession + id }
func flashKey(id string) string  { return constants.RedisPrefixFlash + id }

/*
Get retrieves a session record.

Description: Returns apperr.NotFound if the record is absent or expired.

Parameters:
  - context: context.Context
  - id: string (hashed token)

Returns:
  - *Record: Stored record
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisStore) Get(context context.Context, id string) (*Record, error) {
	data, err := repository.client.Get(context, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	record := &Record{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return record, nil
}

/*
Save stores a session record with a TTL.

Parameters:
  - context: context.Context
  - id: string (hashed token)
  - record: Record
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisStore) Save(context context.Context, id string, record Record, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, recordKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

// Delete removes the record and its pending flash.
func (repository *RedisStore) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, recordKey(id), flashKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

/*
Rotate moves a session to a new id inside MULTI/EXEC.

Parameters:
  - context: context.Context
  - oldID: string (hashed token being retired, may be empty)
  - newID: string (hashed token being issued)
  - record: Record
  - ttl: time.Duration

Returns:
  - error: Transaction failures; nothing is applied in that case
*/
func (repository *RedisStore) Rotate(context context.Context, oldID, newID string, record Record, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, recordKey(newID), data, ttl)
		if oldID != "" {
			pipe.Del(context, recordKey(oldID), flashKey(oldID))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_rotate_failed: %w", err)
	}

	return nil
}

// SetFlash stores the pending flash for a session.
func (repository *RedisStore) SetFlash(context context.Context, id string, flash Flash, ttl time.Duration) error {
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("redis_flash_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, flashKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis_flash_set_failed: %w", err)
	}

	return nil
}

/*
TakeFlash reads and deletes the pending flash with GETDEL, so two concurrent
renders cannot both observe it.

Parameters:
  - context: context.Context
  - id: string (hashed token)

Returns:
  - *Flash: Pending flash or nil
  - error: Connectivity or decoding errors
*/
func (repository *RedisStore) TakeFlash(context context.Context, id string) (*Flash, error) {
	data, err := repository.client.GetDel(context, flashKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_flash_take_failed: %w", err)
	}

	flash := &Flash{}
	if err := json.Unmarshal(data, flash); err != nil {
		return nil, fmt.Errorf("redis_flash_decode_failed: %w", err)
	}

	return flash, nil
}
