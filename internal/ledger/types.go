// Package ledger implements the tamper-evident donation chain: sealing, appending,
// verifying and repairing blocks, and the read-side statistics derived from them.
package ledger

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Repository is the ledger store. Blocks are keyed by number and by transaction hash.
	Repository interface {
		LastBlock(ctx context.Context) (model.Block, bool, error)
		BlockByNumber(ctx context.Context, number uint64) (model.Block, bool, error)
		BlockByHash(ctx context.Context, hash string) (model.Block, bool, error)
		// PrecedingBlock returns the existing block with the greatest number below number.
		PrecedingBlock(ctx context.Context, number uint64) (model.Block, bool, error)
		// BlocksInRange returns at most limit blocks with from <= number <= to, ascending.
		BlocksInRange(ctx context.Context, from, to, limit uint64) ([]model.Block, error)
		InsertBlock(ctx context.Context, block model.Block) error
		UpdateBlock(ctx context.Context, block model.Block) error

		ChainCounts(ctx context.Context) (model.ChainCounts, error)
		Totals(ctx context.Context, filter model.StatsFilter) (model.Totals, error)
		CategoryTotals(ctx context.Context, filter model.StatsFilter) ([]model.CategoryTotal, error)
		TopDonors(ctx context.Context, filter model.StatsFilter, limit uint64) ([]model.DonorTotal, error)
		// ListBlocks returns a newest-first page of matching blocks and the total match count.
		ListBlocks(ctx context.Context, filter model.StatsFilter, page model.Page) ([]model.Block, uint64, error)
	}

	// Directory resolves the parties referenced by a donation.
	Directory interface {
		Donor(ctx context.Context, id string) (model.Donor, bool, error)
		Recipient(ctx context.Context, id string) (model.Recipient, bool, error)
		Campaign(ctx context.Context, id string) (model.Campaign, bool, error)
	}

	// CampaignUpdater credits a campaign with a donation.
	CampaignUpdater interface {
		IncrementRaised(ctx context.Context, campaignID string, blockNumber uint64, amount decimal.Decimal) error
	}

	// Locker serialises the ledger writers. The returned context is done once the lock
	// is released or can no longer be guaranteed; writes must run under it. The
	// returned func releases the lock.
	Locker interface {
		Lock(ctx context.Context) (context.Context, func(), error)
	}

	Metrics interface {
		ObserveAppend(err error, started time.Time)
		ObserveCampaignUpdate(err error)
		ObserveVerify(kind string, valid bool, err error, started time.Time)
		ObserveRepair(updated int, err error, started time.Time)
		ObserveLockWait(operation string, err error, started time.Time)
	}
)
