package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const matchKeyPrefix = "match:"

// RedisMatchCache держит JSON последних версий партий, чтобы не ходить в Mongo на каждый ход.
type RedisMatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMatchCache(client *redis.Client, ttl time.Duration) *RedisMatchCache {
	return &RedisMatchCache{client: client, ttl: ttl}
}

func (r *RedisMatchCache) CacheMatch(ctx context.Context, match game.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, matchKeyPrefix+match.ID, data, r.ttl).Err()
}

func (r *RedisMatchCache) CachedMatch(ctx context.Context, id string) (game.Match, error) {
	data, err := r.client.Get(ctx, matchKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.Match{}, errs.ErrMatchNotFound
	}
	if err != nil {
		return game.Match{}, err
	}

	var match game.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return game.Match{}, err
	}
	return match, nil
}

func (r *RedisMatchCache) Evict(ctx context.Context, id string) error {
	return r.client.Del(ctx, matchKeyPrefix+id).Err()
}
