package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// TopDonors ranks donors of the matching blocks by donated amount.
func (r *Repository) TopDonors(ctx context.Context, filter model.StatsFilter, limit uint64) (donors []model.DonorTotal, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("top_donors", err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	where, args := whereClause(filter)
	query := `
SELECT donor_id, argMax(donor_name, block_number) AS name, sum(amount) AS total, count() AS donations
FROM donation_blocks FINAL` + where + `
GROUP BY donor_id
ORDER BY total DESC, donor_id
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("query top donors: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var donor model.DonorTotal
		if err = rows.Scan(&donor.DonorID, &donor.DonorName, &donor.Amount, &donor.Count); err != nil {
			return nil, fmt.Errorf("scan top donor: %w", err)
		}
		donors = append(donors, donor)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top donors: %w", err)
	}
	return donors, nil
}
