// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soultanzania/safari-api/internal/platform/apperr"
	"github.com/soultanzania/safari-api/internal/platform/constants"
)

// # Redis Refresh Token Store

// RedisRefreshTokenStore implements [RefreshTokenStore] using Redis with
// native key expiry.
type RedisRefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a new Redis-backed [RefreshTokenStore].
func NewRefreshTokenStore(client *redis.Client) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{client: client}
}

/*
Set records a refresh token hash for a user.

Description: Expiry is delegated to Redis; an expired token simply stops
resolving, no sweeper needed.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - timeToLive: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisRefreshTokenStore) Set(context context.Context, tokenHash, userID string, timeToLive time.Duration) error {

	key := constants.RedisPrefixRefreshToken + tokenHash

	if err := store.client.Set(context, key, userID, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis: failed to store refresh token: %w", err)
	}
	return nil
}

/*
Get resolves a refresh token hash to its owner.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: Owner UUID
  - error: apperr.Unauthorized if absent or expired, connectivity errors otherwise
*/
func (store *RedisRefreshTokenStore) Get(context context.Context, tokenHash string) (string, error) {

	key := constants.RedisPrefixRefreshToken + tokenHash

	userID, err := store.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Refresh token is invalid or expired")
		}
		return "", fmt.Errorf("redis: failed to resolve refresh token: %w", err)
	}

	return userID, nil
}

/*
Delete revokes a refresh token hash. Unknown hashes are ignored.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution errors
*/
func (store *RedisRefreshTokenStore) Delete(context context.Context, tokenHash string) error {

	key := constants.RedisPrefixRefreshToken + tokenHash

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke refresh token: %w", err)
	}
	return nil
}
