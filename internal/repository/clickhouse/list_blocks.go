package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// ListBlocks returns a newest-first page of matching blocks and the number of matches.
func (r *Repository) ListBlocks(ctx context.Context, filter model.StatsFilter, page model.Page) (blocks []model.Block, total uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("list_blocks", err, start)
	}()

	where, args := whereClause(filter)

	if total, err = r.countBlocks(ctx, where, args); err != nil {
		return nil, 0, err
	}
	if total == 0 || page.Limit == 0 || page.Offset >= total {
		return nil, total, nil
	}

	query := `
SELECT` + blockColumns + `
FROM donation_blocks FINAL` + where + `
ORDER BY block_number DESC
LIMIT ? OFFSET ?`

	blocks, err = r.selectBlocks(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return blocks, total, nil
}

func (r *Repository) countBlocks(ctx context.Context, where string, args []any) (count uint64, err error) {
	query := `
SELECT count()
FROM donation_blocks FINAL` + where

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query block count: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, errors.New("block count not found")
	}
	if err = rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan block count: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate block count: %w", err)
	}
	return count, nil
}
