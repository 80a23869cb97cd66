package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// PrecedingBlock returns the existing block with the greatest number below number.
func (r *Repository) PrecedingBlock(ctx context.Context, number uint64) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("preceding_block", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM donation_blocks FINAL
WHERE block_number < ?
ORDER BY block_number DESC
LIMIT 1`

	block, found, err := r.selectBlock(ctx, query, number)
	return block, found, err
}
