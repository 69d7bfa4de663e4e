package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"repair-system/internal/entities"
)

// SessionRepositoryInterface persists the "remember me" session: one key per
// remembered user holding the serialized session user.
type SessionRepositoryInterface interface {
	Save(ctx context.Context, user entities.User) error
	Get(ctx context.Context, userID string) (*entities.User, error)
	Delete(ctx context.Context, userID string) error
}

type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) SessionRepositoryInterface {
	return &RedisSessionRepository{client: client}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

func (r *RedisSessionRepository) Save(ctx context.Context, user entities.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	// No TTL: a remembered session survives until logout or replacement.
	return r.client.Set(ctx, sessionKey(user.ID), data, 0).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, userID string) (*entities.User, error) {
	data, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user entities.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, sessionKey(userID)).Err()
}
