// Package quota limits how often an upstream provider may be called.
package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether one more call under key is allowed in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// counter is the subset of redis.Cmdable the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter is a fixed-window limiter backed by Redis INCR and EXPIRE, so the
// count is shared by every process pointing at the same Redis.
type RedisLimiter struct {
	rdb    counter
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a limiter allowing limit calls per window.
func NewRedisLimiter(rdb redis.Cmdable, limit int64, window time.Duration) *RedisLimiter {
	return newRedisLimiter(rdb, limit, window)
}

func newRedisLimiter(rdb counter, limit int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "quota",
		now:    time.Now,
	}
}

func (l *RedisLimiter) windowKey(key string) string {
	bucket := l.now().UTC().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}

// Allow increments the window counter for key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment quota counter: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set quota window expiry: %w", err)
		}
	}
	return count <= l.limit, nil
}

// MemoryLimiter is a process-local fixed-window limiter used when no Redis is configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int64
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	start time.Time
	count int64
}

// NewMemoryLimiter creates a limiter allowing limit calls per window.
func NewMemoryLimiter(limit int64, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		b = &bucket{start: now}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.limit, nil
}
