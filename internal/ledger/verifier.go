package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/goodnatureofminers/donationledger-backend/pkg/workerpool"
)

// LinkStatus explains the outcome of a previous-hash check.
type LinkStatus string

var (
	LinkOK                 LinkStatus = "ok"
	LinkMismatch           LinkStatus = "mismatch"
	LinkPredecessorMissing LinkStatus = "predecessor_missing"
	LinkGenesisMismatch    LinkStatus = "genesis_mismatch"
)

// BlockVerification is the result of checking a single block.
type BlockVerification struct {
	Block             model.Block
	ComputedHash      string
	HashValid         bool
	PreviousHashValid bool
	Link              LinkStatus
	ChainIntegrity    bool
	Verified          bool
	Status            model.BlockStatus
}

// RangeVerification is the result of checking linkage over a block range.
type RangeVerification struct {
	Valid         bool
	BrokenAt      uint64
	Reason        LinkStatus
	BlocksChecked uint64
}

// AuditFinding describes one block that failed the audit.
type AuditFinding struct {
	Number          uint64
	TransactionHash string
	ComputedHash    string
	HashValid       bool
	Link            LinkStatus
}

// AuditReport lists every block with an invalid digest or linkage.
type AuditReport struct {
	BlocksChecked uint64
	Findings      []AuditFinding
}

// Valid reports whether the audit found nothing.
func (r AuditReport) Valid() bool {
	return len(r.Findings) == 0
}

type chainVerifier struct {
	repo     Repository
	pageSize uint64
	workers  int
}

func (v *chainVerifier) verifyBlock(ctx context.Context, hash string) (BlockVerification, error) {
	if hash == "" {
		return BlockVerification{}, validationError("transaction hash is required")
	}
	block, found, err := v.repo.BlockByHash(ctx, hash)
	if err != nil {
		return BlockVerification{}, fmt.Errorf("load block %s: %w", hash, err)
	}
	if !found {
		return BlockVerification{}, notFoundError("transaction %s", hash)
	}

	computed := Seal(block)
	link, err := v.predecessorLink(ctx, block)
	if err != nil {
		return BlockVerification{}, err
	}

	res := BlockVerification{
		Block:             block,
		ComputedHash:      computed,
		HashValid:         computed == block.TransactionHash,
		PreviousHashValid: link == LinkOK,
		Link:              link,
		Verified:          block.Verified,
		Status:            block.Status,
	}
	res.ChainIntegrity = res.HashValid && res.PreviousHashValid
	return res, nil
}

// predecessorLink compares the block with the block numbered immediately before it.
func (v *chainVerifier) predecessorLink(ctx context.Context, block model.Block) (LinkStatus, error) {
	if block.Number <= 1 {
		if block.PreviousHash != GenesisHash {
			return LinkGenesisMismatch, nil
		}
		return LinkOK, nil
	}

	prev, found, err := v.repo.BlockByNumber(ctx, block.Number-1)
	if err != nil {
		return "", fmt.Errorf("load block %d: %w", block.Number-1, err)
	}
	if !found {
		return LinkPredecessorMissing, nil
	}
	if prev.TransactionHash != block.PreviousHash {
		return LinkMismatch, nil
	}
	return LinkOK, nil
}

func (v *chainVerifier) verifyRange(ctx context.Context, start, end uint64) (RangeVerification, error) {
	if start == 0 {
		return RangeVerification{}, validationError("start block must be at least 1")
	}
	to := end
	if to == 0 {
		to = math.MaxUint64
	}
	if to < start {
		return RangeVerification{}, validationError("end block %d precedes start block %d", end, start)
	}

	res := RangeVerification{Valid: true}
	var expected string
	anchored := false

	err := v.walk(ctx, start, to, func(blocks []model.Block) (bool, error) {
		for _, b := range blocks {
			if !anchored {
				anchor, err := v.anchor(ctx, b)
				if err != nil {
					return false, err
				}
				expected = anchor
				anchored = true
			}

			res.BlocksChecked++
			if b.PreviousHash != expected {
				res.Valid = false
				res.BrokenAt = b.Number
				res.Reason = LinkMismatch
				if expected == GenesisHash {
					res.Reason = LinkGenesisMismatch
				}
				return false, nil
			}
			expected = b.TransactionHash
		}
		return true, nil
	})
	if err != nil {
		return RangeVerification{}, err
	}
	return res, nil
}

// anchor returns the previous hash the first block of a walk must carry: the digest of
// the nearest existing block below it, or the genesis sentinel when there is none.
func (v *chainVerifier) anchor(ctx context.Context, first model.Block) (string, error) {
	if first.Number <= 1 {
		return GenesisHash, nil
	}
	prev, found, err := v.repo.PrecedingBlock(ctx, first.Number)
	if err != nil {
		return "", fmt.Errorf("load block preceding %d: %w", first.Number, err)
	}
	if !found {
		return GenesisHash, nil
	}
	return prev.TransactionHash, nil
}

func (v *chainVerifier) audit(ctx context.Context) (AuditReport, error) {
	var report AuditReport
	expected := GenesisHash

	err := v.walk(ctx, 1, math.MaxUint64, func(blocks []model.Block) (bool, error) {
		sealed, err := workerpool.Map(ctx, v.workers, blocks, func(_ context.Context, b model.Block) (string, error) {
			return Seal(b), nil
		})
		if err != nil {
			return false, fmt.Errorf("recompute digests: %w", err)
		}

		for i, b := range blocks {
			report.BlocksChecked++
			link := LinkOK
			if b.PreviousHash != expected {
				link = LinkMismatch
				if expected == GenesisHash {
					link = LinkGenesisMismatch
				}
			}
			if sealed[i] != b.TransactionHash || link != LinkOK {
				report.Findings = append(report.Findings, AuditFinding{
					Number:          b.Number,
					TransactionHash: b.TransactionHash,
					ComputedHash:    sealed[i],
					HashValid:       sealed[i] == b.TransactionHash,
					Link:            link,
				})
			}
			expected = b.TransactionHash
		}
		return true, nil
	})
	if err != nil {
		return AuditReport{}, err
	}
	return report, nil
}

// walk feeds ascending pages of blocks in [from, to] to fn until fn returns false or the range ends.
func (v *chainVerifier) walk(ctx context.Context, from, to uint64, fn func([]model.Block) (bool, error)) error {
	return walkPages(ctx, v.repo, v.pageSize, from, to, fn)
}

func walkPages(ctx context.Context, repo Repository, pageSize, from, to uint64, fn func([]model.Block) (bool, error)) error {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	for {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		blocks, err := repo.BlocksInRange(ctx, from, to, pageSize)
		if err != nil {
			return fmt.Errorf("load blocks %d..%d: %w", from, to, err)
		}
		if len(blocks) == 0 {
			return nil
		}
		more, err := fn(blocks)
		if err != nil || !more {
			return err
		}
		last := blocks[len(blocks)-1].Number
		if uint64(len(blocks)) < pageSize || last >= to {
			return nil
		}
		from = last + 1
	}
}
