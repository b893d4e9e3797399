package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// Redis stores the index in Redis so that several hosts can share one
// embedding run.
type Redis struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache. An empty key selects DefaultKey; a
// zero ttl keeps the entry until it is replaced.
func NewRedis(client redis.Cmdable, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key, ttl: ttl}
}

// Load reads the entry. A missing key is ErrMiss.
func (r *Redis) Load(ctx context.Context, corpusHash string) (*semantic.Index, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	return Decode(data, corpusHash)
}

// Save replaces the entry.
func (r *Redis) Save(ctx context.Context, ix *semantic.Index, corpusHash string) error {
	data, err := Encode(ix, corpusHash)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write embedding cache: %w", err)
	}
	return nil
}
