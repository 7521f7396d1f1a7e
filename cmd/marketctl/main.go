package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/config"
	"github.com/feral-file/cep-market-client/internal/contracts/cep47"
	"github.com/feral-file/cep-market-client/internal/contracts/market"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
	"github.com/feral-file/cep-market-client/internal/reconciler"
	"github.com/feral-file/cep-market-client/internal/service"
	"github.com/feral-file/cep-market-client/internal/signer"
)

var (
	configFile string
	envPath    string
	verbose    bool
)

// app holds the clients shared by every subcommand
type app struct {
	config     *config.CLIConfig
	json       adapter.JSON
	rpc        casper.Client
	nft        *cep47.Client
	market     *market.Client
	reconciler *reconciler.Reconciler
	service    *service.Service
	signer     *signer.KeySigner
}

// keyAccounts reports the configured key's account as the active account
type keyAccounts struct {
	signer *signer.KeySigner
}

func (k keyAccounts) ActiveAccount(_ context.Context) (*domain.AccountHash, error) {
	if k.signer == nil {
		return nil, nil
	}
	account := k.signer.PublicKey().AccountHash()
	return &account, nil
}

func newApp() (*app, error) {
	cfg, err := config.LoadCLIConfig(configFile, envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := zapcore.WarnLevel
	if verbose || cfg.Debug {
		level = zapcore.DebugLevel
	}
	if err := logger.Initialize(logger.Config{
		Debug:           verbose || cfg.Debug,
		Service:         "marketctl",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: level,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := cfg.Contracts.Validate(); err != nil {
		return nil, err
	}

	var keySigner *signer.KeySigner
	if cfg.SecretKeyPath != "" {
		keySigner, err = signer.LoadKeySigner(cfg.KeyAlgorithm, cfg.SecretKeyPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded signing key", zap.String("public_key", keySigner.PublicKey().Hex()))
	}

	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	rpc := casper.NewClient(cfg.Casper.NodeAddress, adapter.NewHTTPClient(cfg.Casper.RequestTimeout), jsonAdapter)
	nftClient := cep47.NewClient(rpc, cfg.Contracts.NFT)
	marketClient, err := market.NewClient(rpc, cfg.Contracts.Market)
	if err != nil {
		return nil, err
	}

	var offerPurse []byte
	if cfg.Contracts.OfferPurseWasm != "" {
		offerPurse, err = os.ReadFile(cfg.Contracts.OfferPurseWasm)
		if err != nil {
			return nil, fmt.Errorf("failed to read offer purse module: %w", err)
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

	return &app{
		config:     cfg,
		json:       jsonAdapter,
		rpc:        rpc,
		nft:        nftClient,
		market:     marketClient,
		reconciler: reconciler.New(nftClient, marketClient, keyAccounts{signer: keySigner}, cfg.Contracts.NFT.ContractHash),
		service: service.New(
			service.Config{PaymentAmount: cfg.Casper.PaymentAmount, OfferPurseWasm: offerPurse},
			cep47.NewDeployer(builder, cfg.Contracts.NFT),
			market.NewDeployer(builder, cfg.Contracts.Market),
			cfg.Contracts.NFT,
			marketClient,
			rpc,
			poller,
			nil,
			nil,
		),
		signer: keySigner,
	}, nil
}

func (a *app) close() {
	a.service.Close()
	logger.Flush(2 * time.Second)
}

// print writes v to stdout as indented JSON
func (a *app) print(v interface{}) error {
	out, err := a.json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// withApp builds the app and cancels the command context on SIGINT or SIGTERM
func withApp(run func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx, a, args)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Operate the CEP-47 NFT contract and its marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Debug logging")

	rootCmd.AddCommand(
		newInfoCmd(),
		newScanCmd(),
		newReconcileCmd(),
		newWaitCmd(),
		newPutDeployCmd(),
		newMintCmd(),
		newBurnCmd(),
		newTransferCmd(),
		newApproveCmd(),
		newListCmd(),
		newBuyCmd(),
		newInstallCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
