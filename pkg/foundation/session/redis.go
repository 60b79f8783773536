package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "session:"
	DefaultTTL = 30 * time.Minute
)

// Redis is a session persisted as a Redis hash. Values are JSON encoded, so after Load numbers
// come back as float64 and structs as maps.
type Redis struct {
	*Memory

	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis creates a session stored under "session:<id>". An empty id starts a new session and
// a non-positive ttl falls back to DefaultTTL.
func NewRedis(client redis.Cmdable, id string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Redis{Memory: NewMemory(id), client: client, ttl: ttl}
}

// Key returns the Redis key of the session.
func (r *Redis) Key() string {
	return keyPrefix + r.ID()
}

// Load replaces the in-memory values with the stored ones. A session that was never saved loads empty.
func (r *Redis) Load(ctx context.Context) error {
	fields, err := r.client.HGetAll(ctx, r.Key()).Result()
	if err != nil {
		return fmt.Errorf("loading session %s: %w", r.ID(), err)
	}

	values := make(map[string]any, len(fields))

	for k, raw := range fields {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("decoding session %s field %q: %w", r.ID(), k, err)
		}

		values[k] = v
	}

	r.replace(values)

	return nil
}

// Save overwrites the stored session with the in-memory values and refreshes its ttl.
func (r *Redis) Save(ctx context.Context) error {
	all := r.All()

	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}

	sort.Strings(names)

	pairs := make([]any, 0, 2*len(names))

	for _, k := range names {
		b, err := json.Marshal(all[k])
		if err != nil {
			return fmt.Errorf("encoding session %s field %q: %w", r.ID(), k, err)
		}

		pairs = append(pairs, k, string(b))
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.Key())

		if len(pairs) > 0 {
			pipe.HSet(ctx, r.Key(), pairs...)
			pipe.Expire(ctx, r.Key(), r.ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("saving session %s: %w", r.ID(), err)
	}

	return nil
}
