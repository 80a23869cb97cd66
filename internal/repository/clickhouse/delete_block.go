package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// DeleteBlock hides a block behind a tombstone row. It exists for tamper drills
// and is not part of the ledger contract.
func (r *Repository) DeleteBlock(ctx context.Context, number uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_block", err, start)
	}()

	const query = `
INSERT INTO donation_blocks (
	block_number,
	version,
	is_deleted
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare tombstone batch: %w", err)
	}
	if err = batch.Append(number, r.nextVersion(), uint8(1)); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append tombstone %d: %w", number, err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("send tombstone %d: %w", number, err)
	}
	return nil
}
