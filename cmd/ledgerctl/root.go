package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/app"
	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	storeConfig app.StoreConfig
	lockConfig  app.LockConfig
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Administer the donation ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeConfig.Storage, "storage", app.StorageLevelDB, "ledger store backend (clickhouse|leveldb)")
	flags.StringVar(&storeConfig.ClickhouseDSN, "clickhouse-dsn", "", "clickhouse dsn")
	flags.StringVar(&storeConfig.LevelDBPath, "leveldb-path", "data/ledger", "leveldb directory")
	flags.StringVar(&lockConfig.RedisAddr, "redis-addr", "", "redis address for the shared ledger lock")
	flags.StringVar(&lockConfig.RedisPassword, "redis-password", "", "redis password")
	flags.IntVar(&lockConfig.RedisDB, "redis-db", 0, "redis database")
	flags.StringVar(&lockConfig.RedisPrefix, "redis-prefix", "donationledger", "redis key prefix")
	flags.DurationVar(&lockConfig.LockTTL, "lock-ttl", 30*time.Second, "ledger lock lease")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log ledger activity")
}

// environment is an opened store with the service built on top of it.
type environment struct {
	store   app.Store
	service *ledger.Service
	logger  *zap.Logger
	close   func() error
}

func openEnvironment(ctx context.Context) (*environment, error) {
	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("can't initialize zap logger: %w", err)
		}
	}

	store, err := app.OpenStore(storeConfig, logger)
	if err != nil {
		return nil, err
	}
	locker, closeLocker, err := app.OpenLocker(ctx, storeConfig, lockConfig, logger)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}
	service, err := app.NewService(store, locker, logger)
	if err != nil {
		return nil, errors.Join(err, closeLocker(), store.Close())
	}
	return &environment{
		store:   store,
		service: service,
		logger:  logger,
		close: func() error {
			_ = logger.Sync()
			return errors.Join(closeLocker(), store.Close())
		},
	}, nil
}

// withEnvironment opens the ledger for the duration of run.
func withEnvironment(run func(cmd *cobra.Command, args []string, env *environment) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		env, err := openEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, env.close())
		}()
		return run(cmd, args, env)
	}
}
