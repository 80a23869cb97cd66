package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// Totals sums donated and utilised amounts over the matching blocks.
func (r *Repository) Totals(ctx context.Context, filter model.StatsFilter) (totals model.Totals, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("totals", err, start)
	}()

	where, args := whereClause(filter)
	query := `
SELECT sum(amount) AS amount, count() AS donations, sum(utilized_amount) AS used
FROM donation_blocks FINAL` + where

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Totals{}, fmt.Errorf("query totals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return model.Totals{}, errors.New("totals not found")
	}
	if err = rows.Scan(&totals.Amount, &totals.Donations, &totals.Used); err != nil {
		return model.Totals{}, fmt.Errorf("scan totals: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Totals{}, fmt.Errorf("iterate totals: %w", err)
	}
	return totals, nil
}
