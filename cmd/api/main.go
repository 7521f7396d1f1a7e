package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/api/middleware"
	"github.com/feral-file/cep-market-client/internal/api/server"
	"github.com/feral-file/cep-market-client/internal/api/shared/executor"
	"github.com/feral-file/cep-market-client/internal/config"
	"github.com/feral-file/cep-market-client/internal/contracts/cep47"
	"github.com/feral-file/cep-market-client/internal/contracts/market"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/emitter"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
	"github.com/feral-file/cep-market-client/internal/reconciler"
	"github.com/feral-file/cep-market-client/internal/service"
	"github.com/feral-file/cep-market-client/internal/store"
	"github.com/feral-file/cep-market-client/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "cep-market-api",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting CEP-47 market API")

	if err := cfg.Contracts.Validate(); err != nil {
		logger.FatalCtx(ctx, "Invalid contract references", zap.Error(err))
	}

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Casper.RequestTimeout)

	// Node and contract clients
	rpc := casper.NewClient(cfg.Casper.NodeAddress, httpClient, jsonAdapter)
	nftClient := cep47.NewClient(rpc, cfg.Contracts.NFT)
	marketClient, err := market.NewClient(rpc, cfg.Contracts.Market)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create market client", zap.Error(err))
	}

	// Wallet session and view refresh
	bus := messaging.NewBus()
	defer bus.Close()
	session := wallet.NewSession(bus)
	viewReconciler := reconciler.New(nftClient, marketClient, session, cfg.Contracts.NFT.ContractHash)
	viewCache := emitter.NewViewCache()
	refresher := emitter.NewRefresher(bus, viewReconciler, viewCache)
	refresher.Start()
	defer refresher.Stop()

	// Catalog store is optional
	var dataStore store.Store
	if cfg.Database.Enabled() {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		dataStore = store.NewPGStore(db, adapter.NewJCS(), clockAdapter)
		logger.InfoCtx(ctx, "Connected to database", zap.String("host", cfg.Database.Host))
	} else {
		logger.WarnCtx(ctx, "Database not configured, catalog and deploy history are disabled")
	}

	// Deploy lifecycle
	var offerPurse []byte
	if cfg.Contracts.OfferPurseWasm != "" {
		offerPurse, err = os.ReadFile(cfg.Contracts.OfferPurseWasm)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to read offer purse module", zap.Error(err), zap.String("path", cfg.Contracts.OfferPurseWasm))
		}
	}

	builder := deploy.NewBuilder(deploy.Params{
		ChainName: cfg.Casper.ChainName,
		GasPrice:  cfg.Casper.GasPrice,
		TTL:       cfg.Casper.DeployTTL,
	}, clockAdapter)
	poller := casper.NewPoller(rpc, clockAdapter, casper.PollerConfig{
		Interval:    cfg.Poller.Interval,
		MaxAttempts: cfg.Poller.MaxAttempts,
	})
	poller.OnStateChange(func(hash string, from, to domain.DeployState) {
		logger.Debug("Deploy state changed", zap.String("deploy_hash", hash), zap.String("from", string(from)), zap.String("to", string(to)))
	})

	deploys := service.New(
		service.Config{PaymentAmount: cfg.Casper.PaymentAmount, OfferPurseWasm: offerPurse},
		cep47.NewDeployer(builder, cfg.Contracts.NFT),
		market.NewDeployer(builder, cfg.Contracts.Market),
		cfg.Contracts.NFT,
		marketClient,
		rpc,
		poller,
		dataStore,
		bus,
	)
	defer deploys.Close()

	// Follow contract events so cached views stay fresh
	if cfg.FollowEvents {
		subscriber, err := casper.NewSubscriber(casper.SubscriberConfig{
			EventStreamURL: cfg.Casper.EventStreamAddress,
			Contract:       cfg.Contracts.NFT,
		}, adapter.NewSSEClient(nil), clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create event subscriber", zap.Error(err))
		}

		var cursors emitter.CursorStore = emitter.NewMemoryCursorStore()
		if dataStore != nil {
			cursors = dataStore
		}
		follower := emitter.NewEmitter(subscriber, bus, cursors, emitter.Config{
			Stream:          "api",
			CursorSaveFreq:  20,
			CursorSaveDelay: 10 * time.Second,
		}, clockAdapter)
		defer follower.Close()

		go func() {
			if err := emitter.RunWithReconnect(ctx, follower, emitter.ReconnectConfig{MaxInterval: time.Minute}); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("component", "event-follower"))
			}
		}()
	}

	// Create and start server
	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, executor.NewExecutor(deploys, viewReconciler, session, viewCache, dataStore))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// don't use the canceled ctx for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
