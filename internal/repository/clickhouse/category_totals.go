package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// CategoryTotals groups the matching blocks by category, largest amount first.
func (r *Repository) CategoryTotals(ctx context.Context, filter model.StatsFilter) (totals []model.CategoryTotal, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("category_totals", err, start)
	}()

	where, args := whereClause(filter)
	query := `
SELECT category, sum(amount) AS total, count() AS donations
FROM donation_blocks FINAL` + where + `
GROUP BY category
ORDER BY total DESC, category`

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			category string
			total    model.CategoryTotal
		)
		if err = rows.Scan(&category, &total.Amount, &total.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		total.Category = model.Category(category)
		totals = append(totals, total)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return totals, nil
}
