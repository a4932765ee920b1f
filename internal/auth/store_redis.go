// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
)

const denylistStore = "Denylist"

// RedisDenylist implements [Denylist] with one sorted set per list.
//
// Members are tokens, scored by their expiry in Unix milliseconds. A member
// whose score has passed is treated as absent and pruned on the next Add. The
// key itself expires with the longest-lived member.
type RedisDenylist struct {
	client  *redis.Client
	timeout time.Duration
	now     func() time.Time
}

// NewRedisDenylist creates a Redis-backed [Denylist].
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{
		client:  client,
		timeout: constants.DenylistTimeout,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (denylist *RedisDenylist) WithClock(now func() time.Time) *RedisDenylist {
	denylist.now = now
	return denylist
}

// addScript inserts the member, prunes what has expired and stretches the key
// TTL to the latest remaining expiry, all inside one atomic script.
//
// KEYS[1] set, ARGV[1] expiry ms, ARGV[2] token, ARGV[3] now ms.
var addScript = redis.NewScript(`
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[3])
local latest = redis.call('ZREVRANGE', KEYS[1], 0, 0, 'WITHSCORES')
if latest[2] then
  redis.call('PEXPIREAT', KEYS[1], string.format('%d', tonumber(latest[2])))
end
return 1
`)

/*
Add revokes token until expiresAt.

Description: Insert, pruning and the TTL update run as one Lua script. The
key never expires before its longest-lived member, whatever the order of
concurrent sign-outs.

Parameters:
  - ctx: context.Context
  - list: string (set name, e.g. "blacklist")
  - token: string
  - expiresAt: time.Time

Returns:
  - error: apperr.StoreUnavailable when Redis cannot be reached
*/
func (denylist *RedisDenylist) Add(ctx context.Context, list, token string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, denylist.timeout)
	defer cancel()

	err := addScript.Run(ctx, denylist.client, []string{list},
		expiresAt.UnixMilli(), token, denylist.now().UnixMilli(),
	).Err()
	if err != nil {
		return apperr.StoreUnavailable(denylistStore, err)
	}

	return nil
}

/*
Contains reports whether token is currently revoked in list.

Returns:
  - bool: true while the entry's expiry is in the future
  - error: apperr.StoreUnavailable when Redis cannot be reached
*/
func (denylist *RedisDenylist) Contains(ctx context.Context, list, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, denylist.timeout)
	defer cancel()

	score, err := denylist.client.ZScore(ctx, list, token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperr.StoreUnavailable(denylistStore, err)
	}

	return int64(score) > denylist.now().UnixMilli(), nil
}
