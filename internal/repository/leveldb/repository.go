// Package leveldb stores the donation chain, the party directory and campaign
// contributions in an embedded LevelDB database for single-node deployments.
package leveldb

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

var defaultOptions = opt.Options{
	Compression:            opt.SnappyCompression,
	BlockCacheCapacity:     32 * opt.MiB,
	WriteBuffer:            16 * opt.MiB,
	DisableSeeksCompaction: true,
}

var (
	// ErrBlockExists is returned when inserting a block number that is already stored.
	ErrBlockExists = errors.New("block already exists")
	// ErrBlockNotFound is returned when updating or deleting a block that is not stored.
	ErrBlockNotFound = errors.New("block not found")
)

var syncWrites = &opt.WriteOptions{Sync: true}

type Repository struct {
	db      *leveldb.DB
	metrics Metrics

	// writeMu makes the read-check-write sequences of block writes atomic.
	writeMu sync.Mutex
}

// Open opens the database at path, creating it when missing and recovering it when corrupted.
func Open(path string, metrics Metrics, logger *zap.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("leveldb path is required")
	}
	if metrics == nil {
		return nil, errors.New("leveldb metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := leveldb.OpenFile(path, &defaultOptions)
	var corrupted *ldbErrors.ErrCorrupted
	if errors.As(err, &corrupted) {
		logger.Warn("leveldb corruption detected, recovering", zap.String("path", path), zap.Error(err))
		db, err = leveldb.RecoverFile(path, &defaultOptions)
		if err != nil {
			return nil, fmt.Errorf("recover leveldb %s: %w", path, err)
		}
		logger.Warn("leveldb recovered", zap.String("path", path))
	}
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}

	return &Repository{db: db, metrics: metrics}, nil
}

// OpenMemory opens a database held entirely in memory.
func OpenMemory(metrics Metrics) (*Repository, error) {
	if metrics == nil {
		return nil, errors.New("leveldb metrics is required")
	}
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &Repository{db: db, metrics: metrics}, nil
}

// Close flushes and closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}
