package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

// transitions lists the statuses reachable from each status. Anything absent is terminal.
var transitions = map[model.BlockStatus][]model.BlockStatus{
	model.StatusPending: {model.StatusConfirmed, model.StatusCompleted, model.StatusFailed},
}

// CanTransition reports whether a block may move from one status to another.
func CanTransition(from, to model.BlockStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UtilizationUpdate carries the utilization fields to overwrite. Nil fields keep their value.
type UtilizationUpdate struct {
	Used        *decimal.Decimal
	Description *string
	ProofURLs   []string
}

func (u UtilizationUpdate) validate() error {
	if u.Used != nil && u.Used.IsNegative() {
		return validationError("utilized amount cannot be negative")
	}
	return nil
}

type lifecycle struct {
	repo Repository
	now  func() time.Time
}

func (l *lifecycle) load(ctx context.Context, number uint64) (model.Block, error) {
	block, found, err := l.repo.BlockByNumber(ctx, number)
	if err != nil {
		return model.Block{}, fmt.Errorf("load block %d: %w", number, err)
	}
	if !found {
		return model.Block{}, notFoundError("block %d", number)
	}
	return block, nil
}

func (l *lifecycle) transition(ctx context.Context, number uint64, to model.BlockStatus) (model.Block, error) {
	block, err := l.load(ctx, number)
	if err != nil {
		return model.Block{}, err
	}
	if !CanTransition(block.Status, to) {
		return model.Block{}, fmt.Errorf("%w: block %d is %s, cannot become %s", ErrInvalidTransition, number, block.Status, to)
	}

	block.Status = to
	if (to == model.StatusConfirmed || to == model.StatusCompleted) && !block.Verified {
		at := l.now()
		block.Verified = true
		block.VerifiedAt = &at
	}

	if err := lockHeld(ctx); err != nil {
		return model.Block{}, fmt.Errorf("%w: update block %d: %w", ErrPersistence, number, err)
	}
	if err := l.repo.UpdateBlock(ctx, block); err != nil {
		return model.Block{}, fmt.Errorf("%w: update block %d: %w", ErrPersistence, number, err)
	}
	return block, nil
}

func (l *lifecycle) updateUtilization(ctx context.Context, number uint64, upd UtilizationUpdate) (model.Utilization, error) {
	block, err := l.load(ctx, number)
	if err != nil {
		return model.Utilization{}, err
	}

	next := block.Utilization
	if upd.Used != nil {
		if upd.Used.GreaterThan(block.Amount) {
			return model.Utilization{}, validationError("utilized amount cannot exceed donation amount")
		}
		next.Used = *upd.Used
	}
	if upd.Description != nil {
		next.Description = *upd.Description
	}
	if upd.ProofURLs != nil {
		next.ProofURLs = upd.ProofURLs
	}
	at := l.now()
	next.UpdatedAt = &at

	block.Utilization = next
	if err := lockHeld(ctx); err != nil {
		return model.Utilization{}, fmt.Errorf("%w: update block %d: %w", ErrPersistence, number, err)
	}
	if err := l.repo.UpdateBlock(ctx, block); err != nil {
		return model.Utilization{}, fmt.Errorf("%w: update block %d: %w", ErrPersistence, number, err)
	}
	return next, nil
}
