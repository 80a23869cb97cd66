package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// UpsertDonors stores donors, superseding rows with the same id.
func (r *Repository) UpsertDonors(ctx context.Context, donors []model.Donor) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_donors", err, start)
	}()

	if len(donors) == 0 {
		return nil
	}

	const query = `
INSERT INTO donors (
	id,
	name,
	email,
	version
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare donors batch: %w", err)
	}

	version := r.nextVersion()
	for _, donor := range donors {
		if err = batch.Append(donor.ID, donor.Name, donor.Email, version); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append donor: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert donors: %w", err)
	}
	return nil
}

// UpsertRecipients stores recipients, superseding rows with the same id.
func (r *Repository) UpsertRecipients(ctx context.Context, recipients []model.Recipient) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_recipients", err, start)
	}()

	if len(recipients) == 0 {
		return nil
	}

	const query = `
INSERT INTO recipients (
	id,
	name,
	tag_line,
	city,
	country,
	version
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare recipients batch: %w", err)
	}

	version := r.nextVersion()
	for _, recipient := range recipients {
		if err = batch.Append(
			recipient.ID,
			recipient.Name,
			recipient.TagLine,
			recipient.City,
			recipient.Country,
			version,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append recipient: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert recipients: %w", err)
	}
	return nil
}

// UpsertCampaigns stores campaigns, superseding rows with the same id.
func (r *Repository) UpsertCampaigns(ctx context.Context, campaigns []model.Campaign) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_campaigns", err, start)
	}()

	if len(campaigns) == 0 {
		return nil
	}

	const query = `
INSERT INTO campaigns (
	id,
	title,
	slug,
	recipient_id,
	category,
	goal_amount,
	currency,
	status,
	start_date,
	end_date,
	version
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare campaigns batch: %w", err)
	}

	version := r.nextVersion()
	for _, campaign := range campaigns {
		if err = batch.Append(
			campaign.ID,
			campaign.Title,
			campaign.Slug,
			campaign.RecipientID,
			string(campaign.Category),
			campaign.GoalAmount,
			campaign.Currency,
			string(campaign.Status),
			campaign.StartDate,
			campaign.EndDate,
			version,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append campaign: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert campaigns: %w", err)
	}
	return nil
}
