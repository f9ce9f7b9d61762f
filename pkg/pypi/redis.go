package pypi

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/pyscout/pyscout/pkg/errors"
)

const redisHashKey = "pyscout:registry"

// RedisStore persists registry entries in a Redis hash, letting several
// machines (or CI runners) share one lookup cache. Each hash field is a
// package name; the value is the entry's JSON encoding.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store backed by the given Redis address. The
// connection is verified eagerly so misconfiguration surfaces at startup
// rather than mid-batch.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connecting to redis cache")
	}
	return &RedisStore{client: client, key: redisHashKey}, nil
}

func (s *RedisStore) Load(ctx context.Context) (map[string]Entry, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "loading redis registry cache")
	}

	entries := make(map[string]Entry, len(raw))
	for name, value := range raw {
		if _, ok := SanitizeName(name); !ok {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			continue
		}
		entries[name] = entry
	}
	return entries, nil
}

func (s *RedisStore) Flush(ctx context.Context, entries map[string]Entry) error {
	if len(entries) == 0 {
		return nil
	}

	fields := make(map[string]any, len(entries))
	for name, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		fields[name] = string(data)
	}

	if err := s.client.HSet(ctx, s.key, fields).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "flushing redis registry cache")
	}
	return nil
}

// Clear drops the shared hash.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "clearing redis registry cache")
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
