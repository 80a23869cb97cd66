package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/app"
	"github.com/goodnatureofminers/donationledger-backend/internal/metrics"
	"github.com/goodnatureofminers/donationledger-backend/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var config struct {
	Addr          string        `long:"addr" env:"LEDGER_API_ADDR" description:"grpc addr" default:":8000"`
	RestAddr      string        `long:"rest-addr" env:"LEDGER_API_REST_ADDR" description:"rest addr" default:":8001"`
	EnableRepair  bool          `long:"enable-repair" env:"LEDGER_API_ENABLE_REPAIR" description:"expose POST /api/donations/fix-integrity"`
	WatchInterval time.Duration `long:"watch-interval" env:"LEDGER_API_WATCH_INTERVAL" description:"full chain verification interval" default:"1m"`

	Store app.StoreConfig `group:"store" namespace:"" env-namespace:"LEDGER"`
	Lock  app.LockConfig  `group:"lock" namespace:"" env-namespace:"LEDGER"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	store, err := app.OpenStore(config.Store, logger)
	if err != nil {
		logger.Fatal("Open ledger store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Close ledger store", zap.Error(err))
		}
	}()

	locker, closeLocker, err := app.OpenLocker(ctx, config.Store, config.Lock, logger)
	if err != nil {
		logger.Fatal("Open ledger lock", zap.Error(err))
	}
	defer func() {
		if err := closeLocker(); err != nil {
			logger.Error("Close ledger lock", zap.Error(err))
		}
	}()

	service, err := app.NewService(store, locker, logger)
	if err != nil {
		logger.Fatal("Build ledger service", zap.Error(err))
	}

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	grpcPrometheus.Register(grpcServer)

	watcher, err := transport.NewIntegrityWatcher(
		service,
		healthServer,
		metrics.NewIntegrityWatcher(),
		config.WatchInterval,
		logger.Named("integrity_watcher"),
	)
	if err != nil {
		logger.Fatal("Build integrity watcher", zap.Error(err))
	}
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Integrity watcher stopped", zap.Error(err))
		}
	}()

	socket, err := net.Listen("tcp", config.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()

	handler, err := transport.NewHandler(service, metrics.NewHTTP(), logger.Named("http"), config.EnableRepair)
	if err != nil {
		logger.Fatal("Build donation handler", zap.Error(err))
	}
	gw := gwruntime.NewServeMux()
	if err := handler.Register(gw); err != nil {
		logger.Fatal("Register donation handler", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server",
		zap.String("addr", config.RestAddr),
		zap.String("storage", config.Store.Storage),
		zap.Bool("repair_enabled", config.EnableRepair),
	)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
