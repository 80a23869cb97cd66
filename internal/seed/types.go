// Package seed fills a ledger with demo donors, recipients, campaigns and donations.
package seed

import (
	"context"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Directory stores the parties a donation refers to.
	Directory interface {
		UpsertDonors(ctx context.Context, donors []model.Donor) error
		UpsertRecipients(ctx context.Context, recipients []model.Recipient) error
		UpsertCampaigns(ctx context.Context, campaigns []model.Campaign) error
	}

	Ledger interface {
		Append(ctx context.Context, req ledger.AppendRequest) (ledger.AppendResult, error)
		Confirm(ctx context.Context, number uint64) (model.Block, error)
		Complete(ctx context.Context, number uint64) (model.Block, error)
		Fail(ctx context.Context, number uint64) (model.Block, error)
	}
)
