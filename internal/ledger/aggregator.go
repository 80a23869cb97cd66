package ledger

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

// OverviewOptions bounds the lists included in an overview. Zero means the default of 10.
type OverviewOptions struct {
	RecentLimit    uint64
	TopDonorsLimit uint64
}

// ChainStats summarises the chain for status pages.
type ChainStats struct {
	TotalBlocks      uint64
	VerifiedBlocks   uint64
	UnverifiedBlocks uint64
	CompletedAmount  decimal.Decimal
}

// BlockPage is one page of a block listing.
type BlockPage struct {
	Blocks []model.Block
	Total  uint64
	Page   model.Page
}

// History is a page of blocks for one party with the party's settled totals.
type History struct {
	BlockPage
	Totals model.Totals
}

type aggregator struct {
	repo Repository
}

func settledFilter() model.StatsFilter {
	return model.StatsFilter{
		Statuses:     []model.BlockStatus{model.StatusCompleted},
		VerifiedOnly: true,
	}
}

func (a *aggregator) overview(ctx context.Context, opts OverviewOptions) (model.Overview, error) {
	if opts.RecentLimit == 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	if opts.TopDonorsLimit == 0 {
		opts.TopDonorsLimit = defaultTopDonorsLimit
	}

	settled := settledFilter()
	totals, err := a.repo.Totals(ctx, settled)
	if err != nil {
		return model.Overview{}, fmt.Errorf("load totals: %w", err)
	}
	byCategory, err := a.repo.CategoryTotals(ctx, settled)
	if err != nil {
		return model.Overview{}, fmt.Errorf("load category totals: %w", err)
	}
	recent, _, err := a.repo.ListBlocks(ctx, model.StatsFilter{VerifiedOnly: true}, model.Page{Limit: opts.RecentLimit})
	if err != nil {
		return model.Overview{}, fmt.Errorf("load recent blocks: %w", err)
	}

	named := settled
	named.ExcludeAnonymous = true
	top, err := a.repo.TopDonors(ctx, named, opts.TopDonorsLimit)
	if err != nil {
		return model.Overview{}, fmt.Errorf("load top donors: %w", err)
	}

	return model.Overview{
		TotalAmount:    totals.Amount,
		TotalDonations: totals.Donations,
		TotalUsed:      totals.Used,
		ByCategory:     byCategory,
		Recent:         recent,
		TopDonors:      top,
	}, nil
}

func (a *aggregator) chainStats(ctx context.Context) (ChainStats, error) {
	counts, err := a.repo.ChainCounts(ctx)
	if err != nil {
		return ChainStats{}, fmt.Errorf("count blocks: %w", err)
	}
	completed, err := a.repo.Totals(ctx, model.StatsFilter{Statuses: []model.BlockStatus{model.StatusCompleted}})
	if err != nil {
		return ChainStats{}, fmt.Errorf("load completed totals: %w", err)
	}

	return ChainStats{
		TotalBlocks:      counts.TotalBlocks,
		VerifiedBlocks:   counts.VerifiedBlocks,
		UnverifiedBlocks: counts.TotalBlocks - counts.VerifiedBlocks,
		CompletedAmount:  completed.Amount,
	}, nil
}

func (a *aggregator) publicLedger(ctx context.Context, status model.BlockStatus, page model.Page) (BlockPage, error) {
	filter := model.StatsFilter{VerifiedOnly: true}
	if status != "" {
		if !status.Valid() {
			return BlockPage{}, validationError("unknown status %q", status)
		}
		filter.Statuses = []model.BlockStatus{status}
	}
	return a.list(ctx, filter, page)
}

func (a *aggregator) donorHistory(ctx context.Context, donorID string, page model.Page) (History, error) {
	if donorID == "" {
		return History{}, validationError("donor id is required")
	}
	return a.history(ctx,
		model.StatsFilter{DonorID: donorID},
		model.StatsFilter{DonorID: donorID, Statuses: []model.BlockStatus{model.StatusCompleted}},
		page,
	)
}

func (a *aggregator) recipientHistory(ctx context.Context, recipientID string, page model.Page) (History, error) {
	if recipientID == "" {
		return History{}, validationError("recipient id is required")
	}
	return a.history(ctx,
		model.StatsFilter{RecipientID: recipientID, VerifiedOnly: true},
		model.StatsFilter{RecipientID: recipientID, Statuses: []model.BlockStatus{model.StatusCompleted}},
		page,
	)
}

func (a *aggregator) history(ctx context.Context, listFilter, totalsFilter model.StatsFilter, page model.Page) (History, error) {
	blocks, err := a.list(ctx, listFilter, page)
	if err != nil {
		return History{}, err
	}
	totals, err := a.repo.Totals(ctx, totalsFilter)
	if err != nil {
		return History{}, fmt.Errorf("load totals: %w", err)
	}
	return History{BlockPage: blocks, Totals: totals}, nil
}

func (a *aggregator) list(ctx context.Context, filter model.StatsFilter, page model.Page) (BlockPage, error) {
	if page.Limit == 0 {
		page.Limit = defaultListLimit
	}
	if page.Limit > MaxListLimit {
		page.Limit = MaxListLimit
	}
	blocks, total, err := a.repo.ListBlocks(ctx, filter, page)
	if err != nil {
		return BlockPage{}, fmt.Errorf("list blocks: %w", err)
	}
	return BlockPage{Blocks: blocks, Total: total, Page: page}, nil
}
