package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// ChainCounts returns the number of stored and verified blocks.
func (r *Repository) ChainCounts(ctx context.Context) (counts model.ChainCounts, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("chain_counts", err, start)
	}()

	const query = `
SELECT count() AS total, countIf(verified) AS verified
FROM donation_blocks FINAL`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return model.ChainCounts{}, fmt.Errorf("query chain counts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return model.ChainCounts{}, errors.New("chain counts not found")
	}
	if err = rows.Scan(&counts.TotalBlocks, &counts.VerifiedBlocks); err != nil {
		return model.ChainCounts{}, fmt.Errorf("scan chain counts: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.ChainCounts{}, fmt.Errorf("iterate chain counts: %w", err)
	}
	return counts, nil
}
