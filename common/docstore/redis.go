package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/droidbay/catalog/common/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection under a single key holding the whole
// JSON array. GET/SET on one key keeps the replace-whole-collection
// semantics of the file backend intact.
type RedisStore struct {
	redis     *redis.Client
	keyPrefix string
	log       *logger.Logger
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(ctx context.Context, client *redis.Client, log *logger.Logger) (*RedisStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("redis store ready", "addr", client.Options().Addr)

	return &RedisStore{
		redis:     client,
		keyPrefix: "catalog:collection:",
		log:       log,
	}, nil
}

// Load reads a collection key into dest
func (s *RedisStore) Load(ctx context.Context, collection string, dest any) error {
	data, err := s.redis.Get(ctx, s.key(collection)).Bytes()
	if err == redis.Nil {
		return json.Unmarshal([]byte("[]"), dest)
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}

	return nil
}

// Replace overwrites a collection key with docs
func (s *RedisStore) Replace(ctx context.Context, collection string, docs any) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	if err := s.redis.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}

	s.log.WithCollection(collection).Debug("collection replaced", "bytes", len(data))
	return nil
}

// Close closes the underlying Redis client
func (s *RedisStore) Close() error {
	return s.redis.Close()
}

func (s *RedisStore) key(collection string) string {
	return s.keyPrefix + collection
}
