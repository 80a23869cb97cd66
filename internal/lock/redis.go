package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Separator joins key segments, matching the rest of the redis keyspace.
	Separator = ":"

	defaultTTL          = 30 * time.Second
	defaultRetryBackoff = 50 * time.Millisecond
)

// ErrLeaseLost is the cause attached to a held context once its lease could not be kept.
var ErrLeaseLost = errors.New("ledger lease lost")

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

// Redis is a lease-based exclusive lock shared by every instance using the same key.
// The lease is refreshed while held so long repairs do not expire it.
type Redis struct {
	client   RedisClient
	key      string
	ttl      time.Duration
	retry    time.Duration
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
	newToken func() string
}

// NewRedis constructs a lease on prefix:ledger:lock.
func NewRedis(client RedisClient, prefix string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	key := "ledger" + Separator + "lock"
	if prefix != "" {
		key = prefix + Separator + key
	}
	return &Redis{
		client:   client,
		key:      key,
		ttl:      ttl,
		retry:    defaultRetryBackoff,
		logger:   logger,
		sleep:    clock.SleepWithContext,
		now:      time.Now,
		newToken: uuid.NewString,
	}, nil
}

// Key returns the redis key guarding the ledger.
func (r *Redis) Key() string {
	return r.key
}

// Lock polls until the lease is acquired or ctx is done. The returned context is
// derived from ctx, ends on unlock and is canceled with ErrLeaseLost as its cause
// when the lease can no longer be kept. Writers must stop once it is done.
func (r *Redis) Lock(ctx context.Context) (context.Context, func(), error) {
	token := r.newToken()
	for {
		ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("acquire lease %s: %w", r.key, err)
		}
		if ok {
			break
		}
		if err := r.sleep(ctx, r.retry); err != nil {
			return nil, nil, err
		}
	}

	held, cancel := context.WithCancelCause(ctx)
	keepCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := r.keepAlive(keepCtx, token); err != nil {
			r.logger.Error("lease lost while held", zap.String("key", r.key), zap.Error(err))
			cancel(err)
		}
	}()

	var once sync.Once
	return held, func() {
		once.Do(func() {
			stop()
			<-done
			cancel(context.Canceled)
			r.release(token)
		})
	}, nil
}

// keepAlive extends the lease until ctx is done. It returns ErrLeaseLost when the key
// holds another token, or when failed extensions would let the lease expire before
// the next attempt.
func (r *Redis) keepAlive(ctx context.Context, token string) error {
	interval := r.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	extended := r.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := r.client.Eval(ctx, extendScript, []string{r.key}, token, r.ttl.Milliseconds()).Int64()
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				if r.now().Sub(extended)+interval >= r.ttl {
					return fmt.Errorf("%w: not extended since %s: %w", ErrLeaseLost, extended.Format(time.RFC3339Nano), err)
				}
				r.logger.Warn("lease not extended", zap.String("key", r.key), zap.Error(err))
				continue
			}
			if n == 0 {
				return fmt.Errorf("%w: %s is held by another token", ErrLeaseLost, r.key)
			}
			extended = r.now()
		}
	}
}

func (r *Redis) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.ttl)
	defer cancel()

	n, err := r.client.Eval(ctx, releaseScript, []string{r.key}, token).Int64()
	if err != nil {
		r.logger.Error("lease not released", zap.String("key", r.key), zap.Error(err))
		return
	}
	if n == 0 {
		r.logger.Warn("lease already expired on release", zap.String("key", r.key))
	}
}
