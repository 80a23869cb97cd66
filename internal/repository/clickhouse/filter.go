package clickhouse

import (
	"strings"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// whereClause renders a StatsFilter as a WHERE clause with positional arguments.
func whereClause(filter model.StatsFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		conds = append(conds, "has(?, status)")
		args = append(args, statuses)
	}
	if filter.VerifiedOnly {
		conds = append(conds, "verified")
	}
	if filter.ExcludeAnonymous {
		conds = append(conds, "NOT anonymous")
	}
	if filter.DonorID != "" {
		conds = append(conds, "donor_id = ?")
		args = append(args, filter.DonorID)
	}
	if filter.RecipientID != "" {
		conds = append(conds, "recipient_id = ?")
		args = append(args, filter.RecipientID)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		conds = append(conds, "timestamp < ?")
		args = append(args, filter.To.UTC())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}
