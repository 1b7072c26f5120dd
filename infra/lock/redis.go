// Package lock provides a Redis-backed implementation of lock.Locker for
// deployments running more than one ledger process against the same store.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/demobank/ledger/pkg/lock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "ledger:lock:"
	defaultTTL    = 30 * time.Second
	defaultPoll   = 10 * time.Millisecond
)

var errLockHeld = errors.New("lock held")

// release deletes the key only while it still carries our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extend resets the expiry only while the key still carries our token.
var extend = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Redis acquires per-account locks as SET NX PX keys holding a random token.
// While a lock is held its keys are re-armed every ttl/3, so the TTL only bounds
// how long the keys outlive a holder that stopped running.
type Redis struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	refresh time.Duration
	poll    time.Duration
	logger  *slog.Logger
}

// Option configures a Redis locker.
type Option func(*Redis)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithTTL bounds how long a crashed holder can keep a key. Live holders refresh
// their keys every ttl/3.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithPollInterval sets the delay between acquisition attempts on a held key.
func WithPollInterval(d time.Duration) Option {
	return func(r *Redis) {
		if d > 0 {
			r.poll = d
		}
	}
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, logger *slog.Logger, opts ...Option) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Redis{
		client: client,
		prefix: defaultPrefix,
		ttl:    defaultTTL,
		poll:   defaultPoll,
		logger: logger.With("component", "redis-locker"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.refresh = max(r.ttl/3, time.Millisecond)
	return r
}

// NewRedisFromURL parses url, connects and pings the server.
func NewRedisFromURL(ctx context.Context, url string, logger *slog.Logger, opts ...Option) (*Redis, error) {
	if url == "" {
		return nil, fmt.Errorf("redis locker: url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis locker: invalid URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis locker: connection failed: %w", err)
	}
	return NewRedis(client, logger, opts...), nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(number int64) string {
	return fmt.Sprintf("%saccount:%d", r.prefix, number)
}

// Lock acquires every key in ascending order, polling held keys until ctx ends.
func (r *Redis) Lock(ctx context.Context, keys ...int64) (func(), error) {
	token := uuid.NewString()
	held := make([]string, 0, len(keys))
	for _, k := range lock.Order(keys) {
		key := r.key(k)
		acquire := func() error {
			ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return backoff.Permanent(err)
			}
			if !ok {
				return errLockHeld
			}
			return nil
		}
		err := backoff.Retry(acquire, backoff.WithContext(backoff.NewConstantBackOff(r.poll), ctx))
		if err != nil {
			r.unlock(held, token)
			return nil, fmt.Errorf("%w %d: %w", lock.ErrLockTimeout, k, err)
		}
		held = append(held, key)
	}

	stop := r.keepAlive(held, token)
	var once sync.Once
	return func() {
		once.Do(func() {
			stop()
			r.unlock(held, token)
		})
	}, nil
}

// keepAlive extends the held keys until the returned func is called. The func
// waits for any extension in flight, so none can land after the release.
func (r *Redis) keepAlive(keys []string, token string) (stop func()) {
	if len(keys) == 0 {
		return func() {}
	}
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(r.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.refreshKeys(keys, token)
			}
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

func (r *Redis) refreshKeys(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.refresh)
	defer cancel()
	for _, key := range keys {
		n, err := extend.Run(ctx, r.client, []string{key}, token, r.ttl.Milliseconds()).Int64()
		switch {
		case err != nil:
			r.logger.Warn("failed to extend lock", "key", key, "error", err)
		case n == 0:
			r.logger.Error("lock lost while held", "key", key)
		}
	}
}

func (r *Redis) unlock(keys []string, token string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(keys) - 1; i >= 0; i-- {
		if err := release.Run(ctx, r.client, []string{keys[i]}, token).Err(); err != nil {
			r.logger.Error("failed to release lock", "key", keys[i], "error", err)
		}
	}
}

var _ lock.Locker = (*Redis)(nil)
