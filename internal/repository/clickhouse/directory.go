package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

// Donor returns the registered donor with id.
func (r *Repository) Donor(ctx context.Context, id string) (donor model.Donor, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("donor", err, start)
	}()

	const query = `
SELECT id, name, email
FROM donors FINAL
WHERE id = ?`

	rows, err := r.conn.Query(ctx, query, id)
	if err != nil {
		return model.Donor{}, false, fmt.Errorf("query donor: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Donor{}, false, fmt.Errorf("iterate donor: %w", err)
		}
		return model.Donor{}, false, nil
	}
	if err = rows.Scan(&donor.ID, &donor.Name, &donor.Email); err != nil {
		return model.Donor{}, false, fmt.Errorf("scan donor: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Donor{}, false, fmt.Errorf("iterate donor: %w", err)
	}
	return donor, true, nil
}

// Recipient returns the registered recipient with id.
func (r *Repository) Recipient(ctx context.Context, id string) (recipient model.Recipient, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recipient", err, start)
	}()

	const query = `
SELECT id, name, tag_line, city, country
FROM recipients FINAL
WHERE id = ?`

	rows, err := r.conn.Query(ctx, query, id)
	if err != nil {
		return model.Recipient{}, false, fmt.Errorf("query recipient: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Recipient{}, false, fmt.Errorf("iterate recipient: %w", err)
		}
		return model.Recipient{}, false, nil
	}
	if err = rows.Scan(&recipient.ID, &recipient.Name, &recipient.TagLine, &recipient.City, &recipient.Country); err != nil {
		return model.Recipient{}, false, fmt.Errorf("scan recipient: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Recipient{}, false, fmt.Errorf("iterate recipient: %w", err)
	}
	return recipient, true, nil
}

// Campaign returns the campaign with id.
func (r *Repository) Campaign(ctx context.Context, id string) (campaign model.Campaign, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("campaign", err, start)
	}()

	const query = `
SELECT id, title, slug, recipient_id, category, goal_amount, currency, status, start_date, end_date
FROM campaigns FINAL
WHERE id = ?`

	rows, err := r.conn.Query(ctx, query, id)
	if err != nil {
		return model.Campaign{}, false, fmt.Errorf("query campaign: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Campaign{}, false, fmt.Errorf("iterate campaign: %w", err)
		}
		return model.Campaign{}, false, nil
	}

	var category, status string
	if err = rows.Scan(
		&campaign.ID,
		&campaign.Title,
		&campaign.Slug,
		&campaign.RecipientID,
		&category,
		&campaign.GoalAmount,
		&campaign.Currency,
		&status,
		&campaign.StartDate,
		&campaign.EndDate,
	); err != nil {
		return model.Campaign{}, false, fmt.Errorf("scan campaign: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Campaign{}, false, fmt.Errorf("iterate campaign: %w", err)
	}

	campaign.Category = model.Category(category)
	campaign.Status = model.CampaignStatus(status)
	campaign.StartDate = campaign.StartDate.UTC()
	campaign.EndDate = campaign.EndDate.UTC()
	return campaign, true, nil
}
