package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goban/internal/domain/user"
	errs "goban/internal/errors"
)

const sessionTTL = time.Hour * 11

// RedisSessionStorage хранит sessionID -> гость (JSON user.Me).
type RedisSessionStorage struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

func NewSessionRedisStorage(redis *redis.Client, log *zap.SugaredLogger) *RedisSessionStorage {
	return &RedisSessionStorage{client: redis, log: log}
}

func (r *RedisSessionStorage) GetUserBySession(ctx context.Context, sessionID string) (user.Me, error) {
	if sessionID == "" {
		return user.Me{}, errs.ErrSessionNotFound
	}
	data, err := r.client.Get(ctx, sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return user.Me{}, errs.ErrSessionNotFound
	}
	if err != nil {
		r.log.Errorf("session lookup failed: %v", err)
		return user.Me{}, err
	}

	var me user.Me
	if err := json.Unmarshal(data, &me); err != nil || me.UserID == "" {
		r.log.Warnf("session %s holds a malformed record", sessionID)
		return user.Me{}, errs.ErrSessionNotFound
	}
	return me, nil
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, sessionID string, me user.Me) error {
	data, err := json.Marshal(me)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionID, data, sessionTTL).Err()
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionID).Err()
}
