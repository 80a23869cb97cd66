// Package app wires the ledger store, lock and service from configuration. It is
// shared by the API server and the admin CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/lock"
	"github.com/goodnatureofminers/donationledger-backend/internal/metrics"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/goodnatureofminers/donationledger-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/donationledger-backend/internal/repository/leveldb"
	"go.uber.org/zap"
)

const (
	StorageClickhouse = "clickhouse"
	StorageLevelDB    = "leveldb"
)

// StoreConfig selects and locates the ledger store.
type StoreConfig struct {
	Storage       string `long:"storage" env:"STORAGE" default:"leveldb" choice:"clickhouse" choice:"leveldb" description:"ledger store backend"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"clickhouse dsn"`
	LevelDBPath   string `long:"leveldb-path" env:"LEVELDB_PATH" default:"data/ledger" description:"leveldb directory"`
}

// LockConfig selects the ledger lock. Without a redis address the lock is process local.
type LockConfig struct {
	RedisAddr     string        `long:"redis-addr" env:"REDIS_ADDR" description:"redis address for the shared ledger lock"`
	RedisPassword string        `long:"redis-password" env:"REDIS_PASSWORD" description:"redis password"`
	RedisDB       int           `long:"redis-db" env:"REDIS_DB" default:"0" description:"redis database"`
	RedisPrefix   string        `long:"redis-prefix" env:"REDIS_PREFIX" default:"donationledger" description:"redis key prefix"`
	LockTTL       time.Duration `long:"lock-ttl" env:"LOCK_TTL" default:"30s" description:"ledger lock lease"`
}

// Store is what both ledger stores provide.
type Store interface {
	ledger.Repository
	ledger.Directory
	ledger.CampaignUpdater
	UpsertDonors(ctx context.Context, donors []model.Donor) error
	UpsertRecipients(ctx context.Context, recipients []model.Recipient) error
	UpsertCampaigns(ctx context.Context, campaigns []model.Campaign) error
	CampaignRaised(ctx context.Context, campaignID string) (model.CampaignRaised, error)
	DeleteBlock(ctx context.Context, number uint64) error
	Close() error
}

var (
	_ Store = (*clickhouse.Repository)(nil)
	_ Store = (*leveldb.Repository)(nil)
)

// OpenStore opens the configured store.
func OpenStore(cfg StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Storage {
	case StorageClickhouse:
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewRepository(StorageClickhouse))
		if err != nil {
			return nil, fmt.Errorf("open clickhouse store: %w", err)
		}
		return repo, nil
	case StorageLevelDB, "":
		repo, err := leveldb.Open(cfg.LevelDBPath, metrics.NewRepository(StorageLevelDB), logger.Named("leveldb"))
		if err != nil {
			return nil, fmt.Errorf("open leveldb store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// ErrSharedStoreUnlocked is returned when a store reachable from several processes is
// opened without a lock shared by those processes.
var ErrSharedStoreUnlocked = errors.New("shared store requires a redis ledger lock")

// Shared reports whether other processes may write to the same store.
func (cfg StoreConfig) Shared() bool {
	return cfg.Storage == StorageClickhouse
}

// OpenLocker returns the ledger lock for store and a func releasing its resources.
// A process local lock is only handed out for stores no other process can open.
func OpenLocker(ctx context.Context, store StoreConfig, cfg LockConfig, logger *zap.Logger) (ledger.Locker, func() error, error) {
	if cfg.RedisAddr == "" {
		if store.Shared() {
			return nil, nil, fmt.Errorf("%w: set --redis-addr for %s storage", ErrSharedStoreUnlocked, store.Storage)
		}
		return lock.NewLocal(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err), client.Close())
	}
	locker, err := lock.NewRedis(client, cfg.RedisPrefix, cfg.LockTTL, logger.Named("lock"))
	if err != nil {
		return nil, nil, errors.Join(err, client.Close())
	}
	logger.Info("using redis ledger lock", zap.String("key", locker.Key()))
	return locker, client.Close, nil
}

// NewService builds the ledger service over store.
func NewService(store Store, locker ledger.Locker, logger *zap.Logger) (*ledger.Service, error) {
	return ledger.NewService(store, store, store, locker, metrics.NewLedger(), logger.Named("ledger"))
}
