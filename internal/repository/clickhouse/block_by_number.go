package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// BlockByNumber returns the block stored under number.
func (r *Repository) BlockByNumber(ctx context.Context, number uint64) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_number", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM donation_blocks FINAL
WHERE block_number = ?`

	block, found, err := r.selectBlock(ctx, query, number)
	return block, found, err
}
