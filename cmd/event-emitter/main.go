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
	"github.com/feral-file/cep-market-client/internal/config"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/emitter"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
	"github.com/feral-file/cep-market-client/internal/providers/jetstream"
	"github.com/feral-file/cep-market-client/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	startFrom  = flag.String("start-from", "", "Event id to resume after, overrides the stored cursor")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventEmitterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "cep-event-emitter",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Casper Event Emitter")

	if err := cfg.Contracts.NFT.Validate(); err != nil {
		logger.FatalCtx(ctx, "Invalid NFT contract reference", zap.Error(err))
	}

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Stream cursor lives in the database when one is configured
	var cursors emitter.CursorStore
	if cfg.Database.Enabled() {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		cursors = store.NewCursorStore(db)
		logger.InfoCtx(ctx, "Connected to database")
	} else {
		cursors = emitter.NewMemoryCursorStore()
		logger.WarnCtx(ctx, "Database not configured, the stream cursor will not survive restarts")
	}

	// Publishers: the in-process bus always, JetStream when configured
	bus := messaging.NewBus()
	unsubscribe := bus.Subscribe(messaging.TopicContractEvent, func(ctx context.Context, msg interface{}) {
		if event, ok := msg.(*domain.ContractEvent); ok {
			logger.InfoCtx(ctx, "Contract event",
				zap.String("kind", string(event.Kind)),
				zap.String("deploy_hash", event.DeployHash),
				zap.Any("payload", event.Payload))
		}
	})
	defer unsubscribe()

	publishers := messaging.MultiPublisher{bus}
	if cfg.NATS.Enabled() {
		natsPublisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		publishers = append(publishers, natsPublisher)
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	}
	defer publishers.Close()

	// Initialize Casper subscriber
	subscriber, err := casper.NewSubscriber(casper.SubscriberConfig{
		EventStreamURL: cfg.Casper.EventStreamAddress,
		Contract:       cfg.Contracts.NFT,
	}, adapter.NewSSEClient(nil), clockAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event subscriber", zap.Error(err))
	}

	eventEmitter := emitter.NewEmitter(subscriber, publishers, cursors, emitter.Config{
		StartFrom:       *startFrom,
		CursorSaveFreq:  uint64(cfg.Emitter.CursorSaveEvery),
		CursorSaveDelay: cfg.Emitter.CursorSaveInterval,
	}, clockAdapter)
	defer eventEmitter.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- emitter.RunWithReconnect(ctx, eventEmitter, emitter.ReconnectConfig{
			MaxInterval: cfg.Emitter.ReconnectMaxWait,
		})
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case <-publishers.CloseChan():
		logger.InfoCtx(ctx, "Publishers closed unexpectedly")
		cancel()
	case err := <-errCh:
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "emitter"))
		}
		cancel()
	}

	logger.Info("Casper Event Emitter stopped")
}
