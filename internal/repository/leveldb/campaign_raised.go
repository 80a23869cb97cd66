package leveldb

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// IncrementRaised credits a campaign with the donation sealed in blockNumber.
// Crediting the same block twice counts it once.
func (r *Repository) IncrementRaised(_ context.Context, campaignID string, blockNumber uint64, amount decimal.Decimal) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("increment_raised", err, start)
	}()

	if err = r.db.Put(contributionKey(campaignID, blockNumber), []byte(amount.String()), syncWrites); err != nil {
		return fmt.Errorf("put contribution %s/%d: %w", campaignID, blockNumber, err)
	}
	return nil
}

// CampaignRaised returns the amount credited to a campaign and the number of donations behind it.
func (r *Repository) CampaignRaised(_ context.Context, campaignID string) (raised model.CampaignRaised, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("campaign_raised", err, start)
	}()

	raised = model.CampaignRaised{CampaignID: campaignID, Amount: decimal.Zero}

	iter := r.db.NewIterator(util.BytesPrefix(contributionKeyPrefix(campaignID)), nil)
	defer iter.Release()

	for iter.Next() {
		amount, parseErr := decimal.NewFromString(string(iter.Value()))
		if parseErr != nil {
			err = fmt.Errorf("parse contribution %s: %w", iter.Key(), parseErr)
			return model.CampaignRaised{}, err
		}
		raised.Amount = raised.Amount.Add(amount)
		raised.DonorCount++
	}
	if err = iterError(iter); err != nil {
		return model.CampaignRaised{}, err
	}
	return raised, nil
}
