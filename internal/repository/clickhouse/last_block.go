package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// LastBlock returns the block with the highest number.
func (r *Repository) LastBlock(ctx context.Context) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("last_block", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM donation_blocks FINAL
ORDER BY block_number DESC
LIMIT 1`

	block, found, err := r.selectBlock(ctx, query)
	return block, found, err
}
