package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisSeenKey = "flatwatcher:seen"
	redisMetaKey = "flatwatcher:meta"
)

// RedisStore persists state in Redis: the seen-set as a native set and the
// validators as a hash. SADD is add-only, which matches the monotonic
// retention of the seen-set.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(ctx context.Context, addr string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisStore{
		client: client,
		ctx:    ctx,
	}
}

// LoadMeta returns the stored validators, or zero Meta when the hash is absent
func (r *RedisStore) LoadMeta() (Meta, error) {
	fields, err := r.client.HGetAll(r.ctx, redisMetaKey).Result()
	if err != nil {
		return Meta{}, fmt.Errorf("failed to load meta from redis: %w", err)
	}
	return Meta{
		ETag:         fields["etag"],
		LastModified: fields["lastModified"],
	}, nil
}

// SaveMeta overwrites the stored validators
func (r *RedisStore) SaveMeta(meta Meta) error {
	err := r.client.HSet(r.ctx, redisMetaKey,
		"etag", meta.ETag,
		"lastModified", meta.LastModified,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save meta to redis: %w", err)
	}
	return nil
}

// LoadSeen returns the stored seen-set. An absent key is an empty set; a key
// holding the wrong type surfaces as ErrSeenCorrupted.
func (r *RedisStore) LoadSeen() (*SeenSet, error) {
	ids, err := r.client.SMembers(r.ctx, redisSeenKey).Result()
	if err != nil {
		if strings.HasPrefix(err.Error(), "WRONGTYPE") {
			return nil, fmt.Errorf("%w: %s: %v", ErrSeenCorrupted, redisSeenKey, err)
		}
		return nil, fmt.Errorf("failed to load seen-set from redis: %w", err)
	}
	return NewSeenSet(ids...), nil
}

// SaveSeen adds the set's ids; members already present are untouched
func (r *RedisStore) SaveSeen(seen *SeenSet) error {
	ids := seen.IDs()
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := r.client.SAdd(r.ctx, redisSeenKey, members...).Err(); err != nil {
		return fmt.Errorf("failed to save seen-set to redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
