package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// BlockByHash returns the lowest-numbered block carrying hash.
func (r *Repository) BlockByHash(ctx context.Context, hash string) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_hash", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM donation_blocks FINAL
WHERE transaction_hash = ?
ORDER BY block_number
LIMIT 1`

	block, found, err := r.selectBlock(ctx, query, hash)
	return block, found, err
}
