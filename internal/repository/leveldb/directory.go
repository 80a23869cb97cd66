package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/syndtr/goleveldb/leveldb"
)

// Donor returns the registered donor with id.
func (r *Repository) Donor(_ context.Context, id string) (donor model.Donor, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("donor", err, start)
	}()

	found, err = r.getJSON(donorKey(id), &donor)
	return donor, found, err
}

// Recipient returns the registered recipient with id.
func (r *Repository) Recipient(_ context.Context, id string) (recipient model.Recipient, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recipient", err, start)
	}()

	found, err = r.getJSON(recipientKey(id), &recipient)
	return recipient, found, err
}

// Campaign returns the campaign with id.
func (r *Repository) Campaign(_ context.Context, id string) (campaign model.Campaign, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("campaign", err, start)
	}()

	data, err := r.db.Get(campaignKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return model.Campaign{}, false, nil
	}
	if err != nil {
		return model.Campaign{}, false, fmt.Errorf("get campaign %s: %w", id, err)
	}
	campaign, err = decodeCampaign(data)
	if err != nil {
		return model.Campaign{}, false, err
	}
	return campaign, true, nil
}

// UpsertDonors stores donors, replacing entries with the same id.
func (r *Repository) UpsertDonors(_ context.Context, donors []model.Donor) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upsert_donors", err, start)
	}()

	batch := new(leveldb.Batch)
	for _, donor := range donors {
		data, encErr := json.Marshal(donor)
		if encErr != nil {
			err = fmt.Errorf("encode donor %s: %w", donor.ID, encErr)
			return err
		}
		batch.Put(donorKey(donor.ID), data)
	}
	err = r.write(batch, "donors")
	return err
}

// UpsertRecipients stores recipients, replacing entries with the same id.
func (r *Repository) UpsertRecipients(_ context.Context, recipients []model.Recipient) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upsert_recipients", err, start)
	}()

	batch := new(leveldb.Batch)
	for _, recipient := range recipients {
		data, encErr := json.Marshal(recipient)
		if encErr != nil {
			err = fmt.Errorf("encode recipient %s: %w", recipient.ID, encErr)
			return err
		}
		batch.Put(recipientKey(recipient.ID), data)
	}
	err = r.write(batch, "recipients")
	return err
}

// UpsertCampaigns stores campaigns, replacing entries with the same id.
func (r *Repository) UpsertCampaigns(_ context.Context, campaigns []model.Campaign) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upsert_campaigns", err, start)
	}()

	batch := new(leveldb.Batch)
	for _, campaign := range campaigns {
		data, encErr := encodeCampaign(campaign)
		if encErr != nil {
			err = fmt.Errorf("encode campaign %s: %w", campaign.ID, encErr)
			return err
		}
		batch.Put(campaignKey(campaign.ID), data)
	}
	err = r.write(batch, "campaigns")
	return err
}

func (r *Repository) getJSON(key []byte, dest any) (bool, error) {
	data, err := r.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) write(batch *leveldb.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	if err := r.db.Write(batch, syncWrites); err != nil {
		return fmt.Errorf("write %s: %w", what, err)
	}
	return nil
}
