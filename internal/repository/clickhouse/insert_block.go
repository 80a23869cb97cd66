package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

const blockNumberFilter = `
WHERE block_number = ?`

// InsertBlock stores a new block as a single-row insert. A live row with the same
// number is never replaced; the caller holds the ledger lock, so the check and the
// insert do not race with other appends.
func (r *Repository) InsertBlock(ctx context.Context, block model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_block", err, start)
	}()

	var live uint64
	if live, err = r.countBlocks(ctx, blockNumberFilter, []any{block.Number}); err != nil {
		err = fmt.Errorf("check block %d: %w", block.Number, err)
		return err
	}
	if live > 0 {
		err = fmt.Errorf("insert block %d: %w", block.Number, ErrBlockExists)
		return err
	}

	err = r.writeBlock(ctx, block)
	return err
}
