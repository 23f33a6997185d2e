// Package cache keeps a read-through copy of user records in Redis. Users
// are never modified or deleted once registered, so entries only expire.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/rueidis"

	model "task-manager.com/task-manager/internal/models"
)

const userKeyPrefix = "user:"

// cachedUser keeps the password digest, which model.User hides from JSON.
type cachedUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
}

type RedisUserCache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisUserCache(client rueidis.Client, ttl time.Duration, logger *slog.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisUserCache) Get(ctx context.Context, username string) (*model.User, bool) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(userKey(username)).Build()).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.logger.Warn("user cache read failed", "username", username, "error", err)
		}
		return nil, false
	}

	var entry cachedUser
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("user cache entry is corrupt", "username", username, "error", err)
		return nil, false
	}

	return &model.User{
		ID:             entry.ID,
		Username:       entry.Username,
		HashedPassword: entry.HashedPassword,
	}, true
}

func (c *RedisUserCache) Set(ctx context.Context, user *model.User) {
	raw, err := json.Marshal(cachedUser{
		ID:             user.ID,
		Username:       user.Username,
		HashedPassword: user.HashedPassword,
	})
	if err != nil {
		c.logger.Warn("user cache encode failed", "username", user.Username, "error", err)
		return
	}

	seconds := int64(c.ttl / time.Second)
	if seconds <= 0 {
		seconds = 1
	}

	cmd := c.client.B().Setex().Key(userKey(user.Username)).Seconds(seconds).Value(rueidis.BinaryString(raw)).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("user cache write failed", "username", user.Username, "error", err)
	}
}

func userKey(username string) string {
	return userKeyPrefix + username
}
