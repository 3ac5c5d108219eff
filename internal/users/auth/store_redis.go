// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// RedisAttemptCounter implements [AttemptCounter] with INCR/EXPIRE.
type RedisAttemptCounter struct {
	client *redis.Client
}

// NewAttemptCounter creates a new Redis-backed [AttemptCounter].
func NewAttemptCounter(client *redis.Client) *RedisAttemptCounter {
	return &RedisAttemptCounter{client: client}
}

func attemptKey(username string) string {
	return constants.RedisPrefixCodeAttempts + strings.ToLower(username)
}

// Failures implements [AttemptCounter]. A missing key means no failures.
func (counter *RedisAttemptCounter) Failures(context context.Context, username string) (int, error) {
	failures, err := counter.client.Get(context, attemptKey(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_code_attempts_get_failed: %w", err)
	}
	return failures, nil
}

/*
RecordFailure increments the counter for username.

Description: INCR and EXPIRE NX run in one transaction, so the window opens
on the first failure and later failures do not extend it.
*/
func (counter *RedisAttemptCounter) RecordFailure(context context.Context, username string, window time.Duration) error {
	key := attemptKey(username)

	_, err := counter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, key)
		pipe.ExpireNX(context, key, window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_code_attempts_incr_failed: %w", err)
	}
	return nil
}

// Reset implements [AttemptCounter].
func (counter *RedisAttemptCounter) Reset(context context.Context, username string) error {
	if err := counter.client.Del(context, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("redis_code_attempts_del_failed: %w", err)
	}
	return nil
}
