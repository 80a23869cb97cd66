// Package clickhouse stores the donation chain, the party directory and campaign
// contributions in ClickHouse. Mutable rows live in ReplacingMergeTree tables: every
// write inserts a new row version and reads collapse versions with FINAL.
package clickhouse

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ErrBlockExists is returned when inserting a block number that is already live.
var ErrBlockExists = errors.New("block already exists")

type Repository struct {
	conn    Conn
	metrics Metrics
	now     func() time.Time

	versionMu   sync.Mutex
	lastVersion uint64
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("clickhouse metrics is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return newRepository(conn, metrics), nil
}

func newRepository(conn Conn, metrics Metrics) *Repository {
	return &Repository{conn: conn, metrics: metrics, now: time.Now}
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	return r.conn.Close()
}

// nextVersion returns a strictly increasing row version for ReplacingMergeTree writes.
func (r *Repository) nextVersion() uint64 {
	r.versionMu.Lock()
	defer r.versionMu.Unlock()

	v := uint64(r.now().UnixNano())
	if v <= r.lastVersion {
		v = r.lastVersion + 1
	}
	r.lastVersion = v
	return v
}
