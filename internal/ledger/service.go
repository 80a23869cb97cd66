package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/clock"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"go.uber.org/zap"
)

// Service exposes the ledger operations. Append, Repair and the lifecycle updates
// run under the ledger lock; verification and aggregation read without it.
type Service struct {
	logger     *zap.Logger
	repo       Repository
	locker     Locker
	metrics    Metrics
	builder    *chainBuilder
	verifier   *chainVerifier
	repairer   *chainRepairer
	aggregator *aggregator
	lifecycle  *lifecycle
}

// NewService wires the ledger components around a store handle.
func NewService(
	repo Repository,
	directory Directory,
	campaigns CampaignUpdater,
	locker Locker,
	metrics Metrics,
	logger *zap.Logger,
) (*Service, error) {
	if repo == nil {
		return nil, errors.New("ledger repository is required")
	}
	if directory == nil {
		return nil, errors.New("ledger directory is required")
	}
	if locker == nil {
		return nil, errors.New("ledger locker is required")
	}
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:  logger,
		repo:    repo,
		locker:  locker,
		metrics: metrics,
		builder: &chainBuilder{
			repo:      repo,
			directory: directory,
			campaigns: campaigns,
			now:       clock.Now,
			logger:    logger.Named("builder"),
		},
		verifier: &chainVerifier{
			repo:     repo,
			pageSize: defaultPageSize,
			workers:  defaultAuditWorkers,
		},
		repairer: &chainRepairer{
			repo:     repo,
			pageSize: defaultPageSize,
			logger:   logger.Named("repairer"),
		},
		aggregator: &aggregator{
			repo: repo,
		},
		lifecycle: &lifecycle{
			repo: repo,
			now:  clock.Now,
		},
	}, nil
}

// Append seals a new donation at the tail of the chain.
func (s *Service) Append(ctx context.Context, req AppendRequest) (result AppendResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveAppend(err, started)
	}()

	req = req.withDefaults()
	if err = req.Validate(); err != nil {
		return AppendResult{}, err
	}
	parties, err := s.builder.resolve(ctx, req)
	if err != nil {
		return AppendResult{}, err
	}

	held, unlock, err := s.lock(ctx, "append")
	if err != nil {
		return AppendResult{}, err
	}
	block, err := s.builder.build(held, req, parties)
	unlock()
	if err != nil {
		return AppendResult{}, err
	}

	s.logger.Info("donation block appended",
		zap.Uint64("block", block.Number),
		zap.String("hash", block.TransactionHash),
		zap.String("amount", block.Amount.StringFixed(amountScale)),
	)

	result = AppendResult{Block: block}
	if block.CampaignID != "" {
		result.Campaign = s.builder.creditCampaign(ctx, block)
		s.metrics.ObserveCampaignUpdate(result.Campaign.Err)
	}
	return result, nil
}

// Block returns a block by number.
func (s *Service) Block(ctx context.Context, number uint64) (model.Block, error) {
	block, found, err := s.repo.BlockByNumber(ctx, number)
	if err != nil {
		return model.Block{}, fmt.Errorf("load block %d: %w", number, err)
	}
	if !found {
		return model.Block{}, notFoundError("block %d", number)
	}
	return block, nil
}

// VerifyBlock recomputes the digest of one block and checks its link to the predecessor.
func (s *Service) VerifyBlock(ctx context.Context, hash string) (res BlockVerification, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveVerify("block", res.ChainIntegrity, err, started)
	}()
	return s.verifier.verifyBlock(ctx, hash)
}

// VerifyRange checks linkage between consecutive blocks in [start, end]; end 0 means the tail.
func (s *Service) VerifyRange(ctx context.Context, start, end uint64) (res RangeVerification, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveVerify("range", res.Valid, err, started)
	}()
	return s.verifier.verifyRange(ctx, start, end)
}

// Audit recomputes every digest and linkage of the chain and reports all findings.
func (s *Service) Audit(ctx context.Context) (report AuditReport, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveVerify("audit", report.Valid(), err, started)
	}()
	return s.verifier.audit(ctx)
}

// Repair relinks and reseals the whole chain while holding the ledger lock.
func (s *Service) Repair(ctx context.Context, opts RepairOptions) (res RepairResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveRepair(res.BlocksUpdated, err, started)
	}()

	held, unlock, err := s.lock(ctx, "repair")
	if err != nil {
		return RepairResult{}, err
	}
	defer unlock()

	s.logger.Warn("repairing chain integrity", zap.Bool("reanchor", opts.Reanchor))
	res, err = s.repairer.repair(held, opts)
	if err != nil {
		s.logger.Error("chain repair stopped",
			zap.Error(err),
			zap.Int("updated", res.BlocksUpdated),
			zap.Uint64("stoppedAt", res.StoppedAt),
		)
		return res, err
	}
	s.logger.Info("chain repair finished",
		zap.Int("updated", res.BlocksUpdated),
		zap.Uint64("total", res.TotalBlocks),
	)
	return res, nil
}

// Confirm marks a pending block confirmed and verified.
func (s *Service) Confirm(ctx context.Context, number uint64) (model.Block, error) {
	return s.transition(ctx, number, model.StatusConfirmed)
}

// Complete marks a pending block settled and verified.
func (s *Service) Complete(ctx context.Context, number uint64) (model.Block, error) {
	return s.transition(ctx, number, model.StatusCompleted)
}

// Fail marks a pending block failed.
func (s *Service) Fail(ctx context.Context, number uint64) (model.Block, error) {
	return s.transition(ctx, number, model.StatusFailed)
}

func (s *Service) transition(ctx context.Context, number uint64, to model.BlockStatus) (model.Block, error) {
	held, unlock, err := s.lock(ctx, "transition")
	if err != nil {
		return model.Block{}, err
	}
	defer unlock()

	block, err := s.lifecycle.transition(held, number, to)
	if err != nil {
		return model.Block{}, err
	}
	s.logger.Info("donation block status changed",
		zap.Uint64("block", number),
		zap.String("status", string(to)),
	)
	return block, nil
}

// UpdateUtilization records how the recipient used a donation.
func (s *Service) UpdateUtilization(ctx context.Context, number uint64, upd UtilizationUpdate) (model.Utilization, error) {
	if err := upd.validate(); err != nil {
		return model.Utilization{}, err
	}

	held, unlock, err := s.lock(ctx, "utilization")
	if err != nil {
		return model.Utilization{}, err
	}
	defer unlock()

	return s.lifecycle.updateUtilization(held, number, upd)
}

// Overview returns the settled totals, category breakdown, recent feed and top donors.
func (s *Service) Overview(ctx context.Context, opts OverviewOptions) (model.Overview, error) {
	return s.aggregator.overview(ctx, opts)
}

// ChainStats returns block counts and the settled total.
func (s *Service) ChainStats(ctx context.Context) (ChainStats, error) {
	return s.aggregator.chainStats(ctx)
}

// PublicLedger lists verified blocks newest first. An empty status lists every status.
func (s *Service) PublicLedger(ctx context.Context, status model.BlockStatus, page model.Page) (BlockPage, error) {
	return s.aggregator.publicLedger(ctx, status, page)
}

// DonorHistory lists the blocks of a donor with their settled totals.
func (s *Service) DonorHistory(ctx context.Context, donorID string, page model.Page) (History, error) {
	return s.aggregator.donorHistory(ctx, donorID, page)
}

// RecipientHistory lists the verified blocks of a recipient with their settled totals.
func (s *Service) RecipientHistory(ctx context.Context, recipientID string, page model.Page) (History, error) {
	return s.aggregator.recipientHistory(ctx, recipientID, page)
}

func (s *Service) lock(ctx context.Context, operation string) (context.Context, func(), error) {
	started := time.Now()
	held, unlock, err := s.locker.Lock(ctx)
	s.metrics.ObserveLockWait(operation, err, started)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire ledger lock for %s: %w", operation, err)
	}
	return held, unlock, nil
}

// lockHeld reports why writes may no longer run under a held ledger lock.
func lockHeld(ctx context.Context) error {
	if err := context.Cause(ctx); err != nil {
		return fmt.Errorf("ledger lock no longer held: %w", err)
	}
	return nil
}
