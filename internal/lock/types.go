// Package lock provides the exclusive ledger lock: an in-process semaphore for a
// single instance and a Redis lease for several instances sharing one store.
package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RedisClient is the subset of the redis client used by the lease.
	RedisClient interface {
		SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
		Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	}
)
