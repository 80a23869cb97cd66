package transport

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/clock"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// LedgerHealthService is the health service name reported for the ledger.
const LedgerHealthService = "donationledger.v1.Ledger"

// IntegrityWatcher periodically verifies the whole chain and publishes the verdict
// as the serving status of LedgerHealthService.
type IntegrityWatcher struct {
	verifier RangeVerifier
	health   HealthSetter
	metrics  WatcherMetrics
	logger   *zap.Logger
	interval time.Duration
	sleep    func(context.Context, time.Duration) error
}

// NewIntegrityWatcher builds an IntegrityWatcher checking every interval.
func NewIntegrityWatcher(
	verifier RangeVerifier,
	health HealthSetter,
	metrics WatcherMetrics,
	interval time.Duration,
	logger *zap.Logger,
) (*IntegrityWatcher, error) {
	if verifier == nil {
		return nil, errors.New("integrity watcher verifier is required")
	}
	if health == nil {
		return nil, errors.New("integrity watcher health server is required")
	}
	if metrics == nil {
		return nil, errors.New("integrity watcher metrics is required")
	}
	if interval <= 0 {
		return nil, errors.New("integrity watcher interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegrityWatcher{
		verifier: verifier,
		health:   health,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		sleep:    clock.SleepWithContext,
	}, nil
}

// Run checks the chain until the context is canceled. The service is reported
// NOT_SERVING once the context ends.
func (w *IntegrityWatcher) Run(ctx context.Context) error {
	defer w.health.SetServingStatus(LedgerHealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	for {
		w.Check(ctx)
		if err := w.sleep(ctx, w.interval); err != nil {
			return err
		}
	}
}

// Check runs a single verification pass. A failed verification leaves the last
// reported status in place.
func (w *IntegrityWatcher) Check(ctx context.Context) {
	started := time.Now()
	res, err := w.verifier.VerifyRange(ctx, 1, 0)
	w.metrics.ObserveCheck(res.Valid, res.BrokenAt, res.BlocksChecked, err, started)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("integrity check failed", zap.Error(err))
		}
		return
	}

	if res.Valid {
		w.health.SetServingStatus(LedgerHealthService, healthpb.HealthCheckResponse_SERVING)
		w.logger.Debug("chain intact", zap.Uint64("blocks", res.BlocksChecked))
		return
	}
	w.health.SetServingStatus(LedgerHealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	w.logger.Error("chain integrity broken",
		zap.Uint64("brokenAt", res.BrokenAt),
		zap.String("reason", string(res.Reason)),
	)
}
