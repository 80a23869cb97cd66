package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

// IncrementRaised credits a campaign with the donation sealed in blockNumber.
// Crediting the same block twice counts it once.
func (r *Repository) IncrementRaised(ctx context.Context, campaignID string, blockNumber uint64, amount decimal.Decimal) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("increment_raised", err, start)
	}()

	const query = `
INSERT INTO campaign_contributions (
	campaign_id,
	block_number,
	amount,
	credited_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare contribution batch: %w", err)
	}
	if err = batch.Append(campaignID, blockNumber, amount, r.now().UTC()); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append contribution: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

// CampaignRaised returns the amount credited to a campaign and the number of donations behind it.
func (r *Repository) CampaignRaised(ctx context.Context, campaignID string) (raised model.CampaignRaised, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("campaign_raised", err, start)
	}()

	const query = `
SELECT sum(amount) AS raised, count() AS donations
FROM campaign_contributions FINAL
WHERE campaign_id = ?`

	rows, err := r.conn.Query(ctx, query, campaignID)
	if err != nil {
		return model.CampaignRaised{}, fmt.Errorf("query campaign raised: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return model.CampaignRaised{}, errors.New("campaign raised not found")
	}
	raised.CampaignID = campaignID
	if err = rows.Scan(&raised.Amount, &raised.DonorCount); err != nil {
		return model.CampaignRaised{}, fmt.Errorf("scan campaign raised: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.CampaignRaised{}, fmt.Errorf("iterate campaign raised: %w", err)
	}
	return raised, nil
}
