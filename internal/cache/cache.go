// Package cache wraps a Redis client so that every operation is
// best-effort: a store outage degrades to "no cache", never to a request
// failure. Callers must treat a miss and an error identically.
package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"emarknews/internal/logger"
	"emarknews/internal/retry"
)

const (
	connectAttempts = 10
	connectDelay    = 300 * time.Millisecond
	connectMaxDelay = 3 * time.Second
	pingTimeout     = 3 * time.Second
)

// Store is the safe key-value wrapper. A Store built without a URL, or
// one whose connect loop exhausted its retries, stays permanently
// degraded: all reads miss and all writes are dropped.
type Store struct {
	client    *redis.Client
	available atomic.Bool
}

// New builds a Store from a redis:// URL. An empty URL yields a degraded
// store; a malformed URL is logged and treated the same way.
func New(redisURL string) *Store {
	s := &Store{}

	if redisURL == "" {
		logger.Warn("cache disabled: no REDIS_URL provided")
		return s
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error("cache disabled: invalid REDIS_URL", "error", err)
		return s
	}

	s.client = redis.NewClient(opts)
	return s
}

// Connect pings the backend with bounded backoff. Meant to run in its own
// goroutine: request handling proceeds uncached while it retries. After
// the attempt budget is spent the store remains unavailable for the
// process lifetime.
func (s *Store) Connect(ctx context.Context) {
	if s.client == nil {
		return
	}

	attempt := 0
	err := retry.Do(ctx, retry.Config{
		MaxAttempts: connectAttempts,
		Delay:       connectDelay,
		MaxDelay:    connectMaxDelay,
		Backoff:     true,
	}, func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("cache connect failed", "attempt", attempt, "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("cache permanently unavailable, serving uncached", "error", err)
		return
	}

	s.available.Store(true)
	logger.Info("cache connected")
}

// Available reports whether the backing store is usable.
func (s *Store) Available() bool {
	return s.available.Load()
}

// Get returns the value and true on a hit. Misses and backend errors are
// indistinguishable by design.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if !s.Available() {
		return "", false
	}
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set writes a value with a TTL, reporting success.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if !s.Available() {
		return false
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes a key, reporting success.
func (s *Store) Delete(ctx context.Context, key string) bool {
	if !s.Available() {
		return false
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("cache delete failed", "key", key, "error", err)
		return false
	}
	return true
}

// Exists reports whether a key is present.
func (s *Store) Exists(ctx context.Context, key string) bool {
	if !s.Available() {
		return false
	}
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		logger.Warn("cache exists failed", "key", key, "error", err)
		return false
	}
	return n > 0
}

// Expire resets a key's TTL, reporting success.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	if !s.Available() {
		return false
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		logger.Warn("cache expire failed", "key", key, "error", err)
		return false
	}
	return true
}

// Health summarizes the store state for the health endpoint. The report
// never fails; a down store is a degraded status, not an error.
func (s *Store) Health(ctx context.Context) map[string]interface{} {
	if s.client == nil {
		return map[string]interface{}{"connected": false, "status": "not_configured"}
	}
	if !s.Available() {
		return map[string]interface{}{"connected": false, "status": "unavailable"}
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return map[string]interface{}{"connected": false, "status": "error", "error": err.Error()}
	}
	return map[string]interface{}{"connected": true, "status": "connected"}
}
