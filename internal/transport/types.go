// Package transport exposes the ledger over HTTP and drives the gRPC health status.
package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger is the subset of ledger.Service served over HTTP.
	Ledger interface {
		Append(ctx context.Context, req ledger.AppendRequest) (ledger.AppendResult, error)
		Block(ctx context.Context, number uint64) (model.Block, error)
		VerifyBlock(ctx context.Context, hash string) (ledger.BlockVerification, error)
		VerifyRange(ctx context.Context, start, end uint64) (ledger.RangeVerification, error)
		Repair(ctx context.Context, opts ledger.RepairOptions) (ledger.RepairResult, error)
		Confirm(ctx context.Context, number uint64) (model.Block, error)
		Complete(ctx context.Context, number uint64) (model.Block, error)
		Fail(ctx context.Context, number uint64) (model.Block, error)
		UpdateUtilization(ctx context.Context, number uint64, upd ledger.UtilizationUpdate) (model.Utilization, error)
		Overview(ctx context.Context, opts ledger.OverviewOptions) (model.Overview, error)
		ChainStats(ctx context.Context) (ledger.ChainStats, error)
		PublicLedger(ctx context.Context, status model.BlockStatus, page model.Page) (ledger.BlockPage, error)
		DonorHistory(ctx context.Context, donorID string, page model.Page) (ledger.History, error)
		RecipientHistory(ctx context.Context, recipientID string, page model.Page) (ledger.History, error)
	}

	// RangeVerifier checks chain linkage.
	RangeVerifier interface {
		VerifyRange(ctx context.Context, start, end uint64) (ledger.RangeVerification, error)
	}

	// HealthSetter is implemented by the grpc health server.
	HealthSetter interface {
		SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
	}

	HTTPMetrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}

	WatcherMetrics interface {
		ObserveCheck(valid bool, brokenAt, blocks uint64, err error, started time.Time)
	}
)
