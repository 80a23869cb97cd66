package leveldb

import (
	"context"
	"sort"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/syndtr/goleveldb/leveldb/util"
)

func matches(filter model.StatsFilter, b model.Block) bool {
	if len(filter.Statuses) > 0 {
		ok := false
		for _, s := range filter.Statuses {
			if b.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if filter.VerifiedOnly && !b.Verified {
		return false
	}
	if filter.ExcludeAnonymous && b.Metadata.Anonymous {
		return false
	}
	if filter.DonorID != "" && b.DonorID != filter.DonorID {
		return false
	}
	if filter.RecipientID != "" && b.RecipientID != filter.RecipientID {
		return false
	}
	if !filter.From.IsZero() && b.Timestamp.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && !b.Timestamp.Before(filter.To) {
		return false
	}
	return true
}

// scan calls fn for every matching block in ascending order.
func (r *Repository) scan(filter model.StatsFilter, fn func(model.Block)) error {
	iter := r.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		block, err := decodeBlock(iter.Value())
		if err != nil {
			return err
		}
		if matches(filter, block) {
			fn(block)
		}
	}
	return iterError(iter)
}

// ChainCounts returns the number of stored and verified blocks.
func (r *Repository) ChainCounts(_ context.Context) (counts model.ChainCounts, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("chain_counts", err, start)
	}()

	err = r.scan(model.StatsFilter{}, func(b model.Block) {
		counts.TotalBlocks++
		if b.Verified {
			counts.VerifiedBlocks++
		}
	})
	if err != nil {
		return model.ChainCounts{}, err
	}
	return counts, nil
}

// Totals sums donated and utilised amounts over the matching blocks.
func (r *Repository) Totals(_ context.Context, filter model.StatsFilter) (totals model.Totals, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("totals", err, start)
	}()

	totals.Amount, totals.Used = decimal.Zero, decimal.Zero
	err = r.scan(filter, func(b model.Block) {
		totals.Amount = totals.Amount.Add(b.Amount)
		totals.Used = totals.Used.Add(b.Utilization.Used)
		totals.Donations++
	})
	if err != nil {
		return model.Totals{}, err
	}
	return totals, nil
}

// CategoryTotals groups the matching blocks by category, largest amount first.
func (r *Repository) CategoryTotals(_ context.Context, filter model.StatsFilter) (totals []model.CategoryTotal, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("category_totals", err, start)
	}()

	index := make(map[model.Category]int)
	err = r.scan(filter, func(b model.Block) {
		i, ok := index[b.Category]
		if !ok {
			i = len(totals)
			index[b.Category] = i
			totals = append(totals, model.CategoryTotal{Category: b.Category, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(b.Amount)
		totals[i].Count++
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Amount.Cmp(totals[j].Amount); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals, nil
}

// TopDonors ranks donors of the matching blocks by donated amount.
func (r *Repository) TopDonors(_ context.Context, filter model.StatsFilter, limit uint64) (donors []model.DonorTotal, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("top_donors", err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	index := make(map[string]int)
	err = r.scan(filter, func(b model.Block) {
		i, ok := index[b.DonorID]
		if !ok {
			i = len(donors)
			index[b.DonorID] = i
			donors = append(donors, model.DonorTotal{DonorID: b.DonorID, Amount: decimal.Zero})
		}
		donors[i].DonorName = b.DonorName
		donors[i].Amount = donors[i].Amount.Add(b.Amount)
		donors[i].Count++
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(donors, func(i, j int) bool {
		if c := donors[i].Amount.Cmp(donors[j].Amount); c != 0 {
			return c > 0
		}
		return donors[i].DonorID < donors[j].DonorID
	})
	if uint64(len(donors)) > limit {
		donors = donors[:limit]
	}
	return donors, nil
}

// ListBlocks returns a newest-first page of matching blocks and the number of matches.
func (r *Repository) ListBlocks(_ context.Context, filter model.StatsFilter, page model.Page) (blocks []model.Block, total uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("list_blocks", err, start)
	}()

	iter := r.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	for ok := iter.Last(); ok; ok = iter.Prev() {
		block, decodeErr := decodeBlock(iter.Value())
		if decodeErr != nil {
			err = decodeErr
			return nil, 0, err
		}
		if !matches(filter, block) {
			continue
		}
		if total >= page.Offset && uint64(len(blocks)) < page.Limit {
			blocks = append(blocks, block)
		}
		total++
	}
	if err = iterError(iter); err != nil {
		return nil, 0, err
	}
	return blocks, total, nil
}
