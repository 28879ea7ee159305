package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lock is held by someone else. Callers
// are expected to fail the request rather than wait; a second close-day
// attempt racing the first must lose cleanly.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker provides exclusive named sections. Acquire returns a release
// function on success and ErrNotAcquired when the section is busy.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// RedisLocker coordinates sections across processes through redis.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker creates a Locker backed by the given redis client.
func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if err == redislock.ErrNotObtained {
		return nil, ErrNotAcquired
	}
	if err != nil {
		return nil, err
	}
	return func() {
		_ = lk.Release(context.Background())
	}, nil
}

// LocalLocker serializes sections within a single process using a per-key
// mutex map. The default when no redis address is configured (single-node
// deployments, tests).
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker creates an in-process Locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return nil, ErrNotAcquired
	}
	return m.Unlock, nil
}
