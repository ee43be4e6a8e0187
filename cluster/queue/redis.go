package queue

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis is a networked IdentifyQueue backend for multiple processes
// sharing one set of credentials: admission is serialized through a
// single Redis key's SET NX lock rather than an in-process channel,
// repurposing the same *redis.Client construction
// gateway/manager.go's NewManager used for its (now out-of-scope, see
// DESIGN.md) cache persistence layer.
type Redis struct {
	client   *redis.Client
	key      string
	interval time.Duration
}

// NewRedis builds a Redis-backed queue. key namespaces the lock so
// multiple clusters can share one Redis instance without colliding.
func NewRedis(client *redis.Client, key string, interval time.Duration) *Redis {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Redis{client: client, key: key, interval: interval}
}

// Request polls for the lock until acquired or ctx is cancelled. Losing
// the race simply means retrying after a short backoff; there is no
// starvation risk because every waiter retries independently and the lock
// always expires.
func (q *Redis) Request(ctx context.Context, shardID int) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		ok, err := q.client.SetNX(ctx, q.key, shardID, q.interval).Result()
		if err == nil && ok {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
