package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"go.uber.org/zap"
)

// RepairOptions tunes a repair pass.
type RepairOptions struct {
	// Reanchor allows the lowest surviving block to be linked to the genesis
	// sentinel when block 1 no longer exists. Without it such a chain is left untouched.
	Reanchor bool
}

// RepairResult reports what a repair pass changed. When the pass stops early, on a
// write failure or because the ledger lock was lost, StoppedAt is the first block not
// brought back into line; blocks before it are consistent and blocks from it onwards
// are untouched.
type RepairResult struct {
	BlocksUpdated int
	TotalBlocks   uint64
	StoppedAt     uint64
}

type chainRepairer struct {
	repo     Repository
	pageSize uint64
	logger   *zap.Logger
}

// repair walks the chain from the genesis sentinel, relinking and resealing every block
// that drifted. ctx is the held ledger lock; no block is rewritten once it is done.
func (r *chainRepairer) repair(ctx context.Context, opts RepairOptions) (RepairResult, error) {
	var res RepairResult
	expected := GenesisHash
	first := true
	var checked uint64

	err := walkPages(ctx, r.repo, r.pageSize, 1, math.MaxUint64, func(blocks []model.Block) (bool, error) {
		for _, b := range blocks {
			if first {
				first = false
				if b.Number != 1 && !opts.Reanchor {
					return false, fmt.Errorf("%w: lowest block is %d", ErrGenesisMissing, b.Number)
				}
			}
			res.TotalBlocks++

			changed := false
			if b.PreviousHash != expected {
				r.logger.Info("fixing previous hash", zap.Uint64("block", b.Number))
				b.PreviousHash = expected
				changed = true
			}
			if sealed := Seal(b); sealed != b.TransactionHash {
				r.logger.Info("fixing transaction hash", zap.Uint64("block", b.Number))
				b.TransactionHash = sealed
				changed = true
			}

			if changed {
				if err := lockHeld(ctx); err != nil {
					res.StoppedAt = b.Number
					return false, fmt.Errorf("%w: rewrite block %d: %w", ErrPersistence, b.Number, err)
				}
				if err := r.repo.UpdateBlock(ctx, b); err != nil {
					res.StoppedAt = b.Number
					return false, fmt.Errorf("%w: rewrite block %d: %w", ErrPersistence, b.Number, err)
				}
				res.BlocksUpdated++
			}
			expected = b.TransactionHash
			checked = b.Number
		}
		return true, nil
	})
	if err != nil && res.StoppedAt == 0 && ctx.Err() != nil {
		res.StoppedAt = checked + 1
		err = fmt.Errorf("%w: repair stopped after block %d: %w", ErrPersistence, checked, lockHeld(ctx))
	}
	return res, err
}
