// Package service orchestrates the deploy lifecycle: build, sign, submit and track to finality
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts/cep47"
	"github.com/feral-file/cep-market-client/internal/contracts/market"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/messaging"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
	"github.com/feral-file/cep-market-client/internal/signer"
	"github.com/feral-file/cep-market-client/internal/store"
)

// Operation names recorded with tracked deploys
const (
	OperationMint          = "mint"
	OperationBurn          = "burn"
	OperationTransfer      = "transfer"
	OperationApprove       = "approve"
	OperationCreateListing = "create_listing"
	OperationProcessSale   = "process_sale"
	OperationInstall       = "install"
	OperationUnknown       = "unknown"
)

// Contracts accepted by PrepareInstall
const (
	ContractNFT    = "nft"
	ContractMarket = "market"
)

// FinalityPoller waits for deploy execution results
//
//go:generate mockgen -source=service.go -destination=../mocks/service.go -package=mocks -mock_names=FinalityPoller=MockFinalityPoller,EscrowResolver=MockEscrowResolver
type FinalityPoller interface {
	// WaitOutcome polls until the deploy has a result, attempts run out or ctx is done
	WaitOutcome(ctx context.Context, deployHash string) (domain.DeployOutcome, error)

	// Check queries the deploy once
	Check(ctx context.Context, deployHash string) (domain.DeployOutcome, error)
}

// EscrowResolver resolves the marketplace's own approval account
type EscrowResolver interface {
	MarketItemHash(ctx context.Context) (string, error)
}

// Config holds the deploy service settings
type Config struct {
	// PaymentAmount is the default payment in motes when a request leaves it empty
	PaymentAmount string
	// OfferPurseWasm is the session module used to buy a market item
	OfferPurseWasm []byte
}

// Prepared is an unsigned deploy together with its wallet-facing JSON
type Prepared struct {
	Deploy *deploy.Deploy
	JSON   []byte
}

// Service builds, submits and tracks deploys against the NFT and marketplace contracts
type Service struct {
	config    Config
	nft       *cep47.Deployer
	market    *market.Deployer
	nftRef    domain.ContractReference
	escrow    EscrowResolver
	rpc       casper.Client
	poller    FinalityPoller
	store     store.Store
	publisher *messaging.Bus

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// New creates a deploy service. store and bus may be nil.
func New(
	cfg Config,
	nft *cep47.Deployer,
	mkt *market.Deployer,
	nftRef domain.ContractReference,
	escrow EscrowResolver,
	rpc casper.Client,
	poller FinalityPoller,
	st store.Store,
	bus *messaging.Bus,
) *Service {
	if cfg.PaymentAmount == "" {
		cfg.PaymentAmount = domain.DEFAULT_PAYMENT_AMOUNT
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		config:    cfg,
		nft:       nft,
		market:    mkt,
		nftRef:    nftRef,
		escrow:    escrow,
		rpc:       rpc,
		poller:    poller,
		store:     st,
		publisher: bus,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Service) payment(amount string) string {
	if strings.TrimSpace(amount) == "" {
		return s.config.PaymentAmount
	}
	return amount
}

func prepared(d *deploy.Deploy, err error) (*Prepared, error) {
	if err != nil {
		return nil, err
	}
	js, err := deploy.ToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize deploy: %w", err)
	}
	return &Prepared{Deploy: d, JSON: js}, nil
}

func parseSender(sender string) (domain.PublicKey, error) {
	key, err := domain.ParsePublicKey(sender)
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("%w: sender: %v", domain.ErrEncoding, err)
	}
	return key, nil
}

// PrepareMint builds an unsigned mint deploy. An empty recipient mints to the sender.
func (s *Service) PrepareMint(ctx context.Context, in MintInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	recipient := in.Recipient
	if recipient == "" {
		recipient = sender.AccountHash().String()
	}
	return prepared(s.nft.Mint(recipient, in.TokenIDs, in.Metas, sender, s.payment(in.Payment)))
}

// PrepareBurn builds an unsigned burn deploy. An empty owner burns from the sender.
func (s *Service) PrepareBurn(ctx context.Context, in BurnInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	owner := in.Owner
	if owner == "" {
		owner = sender.AccountHash().String()
	}
	return prepared(s.nft.Burn(owner, in.TokenIDs, sender, s.payment(in.Payment)))
}

// PrepareTransfer builds an unsigned transfer deploy
func (s *Service) PrepareTransfer(ctx context.Context, in TransferInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	return prepared(s.nft.Transfer(in.Recipient, in.TokenIDs, sender, s.payment(in.Payment)))
}

// PrepareApprove builds an unsigned approve deploy whose spender is the marketplace escrow account
func (s *Service) PrepareApprove(ctx context.Context, in ApproveInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	spender, err := s.escrow.MarketItemHash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve market escrow account: %w", err)
	}
	return prepared(s.nft.Approve(spender, in.TokenIDs, sender, s.payment(in.Payment)))
}

// PrepareCreateListing builds an unsigned create_market_item deploy for tokens of the configured NFT contract
func (s *Service) PrepareCreateListing(ctx context.Context, in CreateListingInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	recipient := in.Recipient
	if recipient == "" {
		recipient = sender.AccountHash().String()
	}

	nftContract := in.NFTContract
	if nftContract == "" {
		nftContract = s.nftRef.ContractHash
	}
	contracts := make([]string, len(in.ItemIDs))
	for i := range contracts {
		contracts[i] = nftContract
	}
	return prepared(s.market.CreateMarketItem(recipient, in.ItemIDs, contracts, in.AskingPrices, in.TokenIDs, sender, s.payment(in.Payment)))
}

// PrepareProcessSale builds an unsigned offer-purse deploy buying ItemID for Amount motes
func (s *Service) PrepareProcessSale(ctx context.Context, in ProcessSaleInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	recipient := in.Recipient
	if recipient == "" {
		recipient = sender.AccountHash().String()
	}
	return prepared(s.market.ProcessMarketSale(s.config.OfferPurseWasm, recipient, in.ItemID, in.Amount, sender, s.payment(in.Payment)))
}

// PrepareInstall builds an unsigned module-bytes deploy installing the NFT or market contract
func (s *Service) PrepareInstall(ctx context.Context, in InstallInput) (*Prepared, error) {
	sender, err := parseSender(in.Sender)
	if err != nil {
		return nil, err
	}
	switch in.Contract {
	case ContractNFT:
		return prepared(s.nft.Install(in.Wasm, cep47.InstallArgs{
			Name:         in.Name,
			Symbol:       in.Symbol,
			Meta:         in.Meta,
			ContractName: in.ContractName,
		}, sender, s.payment(in.Payment)))
	case ContractMarket:
		return prepared(s.market.Install(in.Wasm, market.InstallArgs{
			MarketName:   in.Name,
			MarketSymbol: in.Symbol,
			MarketMeta:   in.Meta,
			ContractName: in.ContractName,
		}, sender, s.payment(in.Payment)))
	}
	return nil, &clvalue.EncodingError{Arg: "contract", Reason: fmt.Sprintf("unknown contract %q", in.Contract)}
}

// Submit validates a signed deploy, sends it to the node and records it as submitted.
// Submission is never retried.
func (s *Service) Submit(ctx context.Context, signedJSON []byte) (string, error) {
	d, err := deploy.FromJSON(signedJSON)
	if err != nil {
		return "", err
	}
	if len(d.Approvals) == 0 {
		return "", fmt.Errorf("%w: deploy carries no approvals", domain.ErrInvalidDeploy)
	}

	hash, err := s.rpc.PutDeploy(ctx, signedJSON)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(hash, d.HashHex()) {
		logger.WarnCtx(ctx, "Node returned a different deploy hash",
			zap.String("expected", d.HashHex()),
			zap.String("actual", hash))
	}

	logger.InfoCtx(ctx, "Deploy submitted",
		zap.String("deploy_hash", hash),
		zap.String("operation", s.operationOf(d)),
		zap.String("sender", d.Header.Account.Hex()))

	if s.store != nil {
		err := s.store.CreateDeploy(ctx, store.CreateDeployInput{
			DeployHash: hash,
			Operation:  s.operationOf(d),
			Sender:     d.Header.Account.Hex(),
		})
		if err != nil {
			// The deploy is already on its way; losing the record is not fatal
			logger.ErrorCtx(ctx, fmt.Errorf("failed to record deploy: %w", err), zap.String("deploy_hash", hash))
		}
	}
	return hash, nil
}

func (s *Service) operationOf(d *deploy.Deploy) string {
	switch d.Session.Kind {
	case deploy.ItemStoredContractByHash:
		switch d.Session.EntryPoint {
		case cep47.EntryPointMint:
			return OperationMint
		case cep47.EntryPointBurn:
			return OperationBurn
		case cep47.EntryPointTransfer:
			return OperationTransfer
		case cep47.EntryPointApprove:
			return OperationApprove
		case market.EntryPointCreateMarketItem:
			return OperationCreateListing
		}
	case deploy.ItemModuleBytes:
		if _, ok := d.Session.Args.Get("market_contract_hash"); ok {
			return OperationProcessSale
		}
		if _, ok := d.Session.Args.Get("contract_name"); ok {
			return OperationInstall
		}
	}
	return OperationUnknown
}

// Track polls the deploy in the background until it is final, then records and publishes the outcome.
// Polling stops when the service is closed.
func (s *Service) Track(ctx context.Context, deployHash string) {
	// Detach from the request but keep its values for logging
	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(s.ctx, cancel)

	// Add must not race with Close's Wait
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		stop()
		cancel()
		logger.WarnCtx(ctx, "Deploy service closed, not tracking", zap.String("deploy_hash", deployHash))
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer stop()
		defer cancel()

		outcome, err := s.finalize(pollCtx, deployHash)
		if err != nil && errors.Is(err, context.Canceled) {
			logger.InfoCtx(pollCtx, "Deploy tracking cancelled", zap.String("deploy_hash", deployHash))
			return
		}
		logger.InfoCtx(pollCtx, "Deploy tracking finished",
			zap.String("deploy_hash", deployHash),
			zap.String("state", string(outcome.State)))
	}()
}

// Wait blocks until the deploy is final and records the outcome
func (s *Service) Wait(ctx context.Context, deployHash string) (domain.DeployOutcome, error) {
	return s.finalize(ctx, deployHash)
}

func (s *Service) finalize(ctx context.Context, deployHash string) (domain.DeployOutcome, error) {
	outcome, err := s.poller.WaitOutcome(ctx, deployHash)
	if err != nil && outcome.State == "" {
		return outcome, err
	}
	if outcome.DeployHash == "" {
		outcome.DeployHash = deployHash
	}

	if s.store != nil {
		if serr := s.store.UpdateDeployOutcome(context.WithoutCancel(ctx), outcome); serr != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to record deploy outcome: %w", serr), zap.String("deploy_hash", deployHash))
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(ctx, messaging.TopicDeployFinalized, outcome)
	}
	return outcome, err
}

// Execute signs d through gw, submits it and waits for finality.
// A declined signature is returned as is and never retried.
func (s *Service) Execute(ctx context.Context, gw signer.Gateway, d *deploy.Deploy) (domain.DeployOutcome, error) {
	signed, err := signer.SignDeploy(ctx, gw, d)
	if err != nil {
		return domain.DeployOutcome{}, err
	}
	js, err := deploy.ToJSON(signed)
	if err != nil {
		return domain.DeployOutcome{}, fmt.Errorf("failed to serialize signed deploy: %w", err)
	}
	hash, err := s.Submit(ctx, js)
	if err != nil {
		return domain.DeployOutcome{}, err
	}
	return s.Wait(ctx, hash)
}

// Outcome returns the latest known outcome of a deploy, preferring a recorded terminal state.
// Without a terminal record the node is queried once.
func (s *Service) Outcome(ctx context.Context, deployHash string) (domain.DeployOutcome, error) {
	deployHash = domain.NormalizeHash(deployHash)
	if s.store != nil {
		record, err := s.store.GetDeploy(ctx, deployHash)
		if err != nil {
			return domain.DeployOutcome{}, fmt.Errorf("failed to get deploy: %w", err)
		}
		if record != nil && record.State.IsTerminal() && record.State != domain.DeployStateTimedOut {
			return record.Outcome(), nil
		}
	}
	return s.poller.Check(ctx, deployHash)
}

// Close cancels background tracking and waits for it to stop
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
