package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// BlocksInRange returns at most limit blocks numbered within [from, to], ascending.
func (r *Repository) BlocksInRange(ctx context.Context, from, to, limit uint64) ([]model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("blocks_in_range", err, start)
	}()

	if limit == 0 || to < from {
		return nil, nil
	}

	const query = `
SELECT` + blockColumns + `
FROM donation_blocks FINAL
WHERE block_number >= ? AND block_number <= ?
ORDER BY block_number
LIMIT ?`

	blocks, err := r.selectBlocks(ctx, query, from, to, limit)
	return blocks, err
}
