// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crmlocal/api/internal/platform/constants"
)

// # Presence Repository

// RedisPresenceRepository implements PresenceRepository using Redis TTL keys.
//
// One key per user, refreshed on every authenticated request. The key value is
// the refresh timestamp; expiry of the key means the user has gone offline.
type RedisPresenceRepository struct {
	client *redis.Client
}

// NewPresenceRepository creates a new Redis-backed PresenceRepository.
func NewPresenceRepository(client *redis.Client) *RedisPresenceRepository {
	return &RedisPresenceRepository{client: client}
}

/*
MarkActive refreshes the presence key for a username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Execution errors
*/
func (repository *RedisPresenceRepository) MarkActive(context context.Context, username string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixPresence, username)

	// Refresh the TTL key with the current timestamp
	if err := repository.client.Set(context, key, time.Now().Format(time.RFC3339), constants.PresenceTTL).Err(); err != nil {
		return fmt.Errorf("redis_presence_mark_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
IsOnline reports whether the presence key for a username is still alive.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - bool: true while the TTL key exists
  - error: Retrieval failures
*/
func (repository *RedisPresenceRepository) IsOnline(context context.Context, username string) (bool, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixPresence, username)

	// EXISTS returns the number of matching keys
	count, err := repository.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_presence_exists_failed: %w", err)
	}

	return count > 0, nil
}
