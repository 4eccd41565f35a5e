package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/papacapim/server/config"
	"github.com/papacapim/server/routes"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/telemetry"
	"github.com/papacapim/server/utils"
)

const serviceName = "papacapim"

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		utils.Logger.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			utils.Logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db := config.InitDatabase(cfg)
	utils.InitRedis(cfg)

	r := routes.SetupRouter(cfg, store.New(db))
	handler := otelhttp.NewHandler(r, serviceName)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(ctx, ":"+cfg.AppPort, handler); err != nil {
		utils.Sugar.Errorf("server stopped with error: %v", err)
		stop()
		os.Exit(1)
	}
}
