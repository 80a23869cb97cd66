package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// UpdateBlock supersedes the stored block with the same number.
func (r *Repository) UpdateBlock(ctx context.Context, block model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_block", err, start)
	}()

	err = r.writeBlock(ctx, block)
	return err
}
