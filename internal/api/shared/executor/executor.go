package executor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/api/shared/constants"
	"github.com/feral-file/cep-market-client/internal/api/shared/dto"
	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
	"github.com/feral-file/cep-market-client/internal/service"
	"github.com/feral-file/cep-market-client/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor,DeployService=MockDeployService,NFTViewer=MockNFTViewer,WalletSession=MockWalletSession,ViewCache=MockViewCache
type Executor interface {
	// GetNFT returns the reconciled view of a token, nil when the token does not exist.
	// A cached view is returned unless refresh is set.
	GetNFT(ctx context.Context, tokenID string, refresh bool) (*dto.NFTResponse, error)

	// ListNFTs scans the whole catalog, or only the active account's tokens when owned is set
	ListNFTs(ctx context.Context, owned bool) (*dto.NFTListResponse, error)

	// PrepareMint builds an unsigned mint deploy
	PrepareMint(ctx context.Context, input service.MintInput) (*dto.PreparedDeployResponse, error)

	// PrepareBurn builds an unsigned burn deploy
	PrepareBurn(ctx context.Context, input service.BurnInput) (*dto.PreparedDeployResponse, error)

	// PrepareTransfer builds an unsigned transfer deploy
	PrepareTransfer(ctx context.Context, input service.TransferInput) (*dto.PreparedDeployResponse, error)

	// PrepareApprove builds an unsigned approve deploy for the marketplace escrow
	PrepareApprove(ctx context.Context, input service.ApproveInput) (*dto.PreparedDeployResponse, error)

	// PrepareCreateListing builds an unsigned create_market_item deploy
	PrepareCreateListing(ctx context.Context, input service.CreateListingInput) (*dto.PreparedDeployResponse, error)

	// PrepareProcessSale builds an unsigned offer-purse deploy
	PrepareProcessSale(ctx context.Context, input service.ProcessSaleInput) (*dto.PreparedDeployResponse, error)

	// SubmitDeploy submits a signed deploy. With wait it blocks until finality, otherwise it tracks in background.
	SubmitDeploy(ctx context.Context, signedJSON []byte, wait bool) (*dto.DeployResponse, error)

	// GetDeploy returns the latest known outcome of a deploy
	GetDeploy(ctx context.Context, deployHash string) (*dto.DeployResponse, error)

	// ApplyWalletEvent applies a signer event forwarded by the browser
	ApplyWalletEvent(ctx context.Context, event domain.WalletEvent) (*dto.WalletStateResponse, error)

	// ListItems returns catalog items newest first
	ListItems(ctx context.Context, contractHash string, limit int, offset int) (*dto.ItemListResponse, error)

	// CreateItem stores a catalog item; created is false when an equal item already exists
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, bool, error)
}

// DeployService is the deploy lifecycle used by the API
type DeployService interface {
	PrepareMint(ctx context.Context, in service.MintInput) (*service.Prepared, error)
	PrepareBurn(ctx context.Context, in service.BurnInput) (*service.Prepared, error)
	PrepareTransfer(ctx context.Context, in service.TransferInput) (*service.Prepared, error)
	PrepareApprove(ctx context.Context, in service.ApproveInput) (*service.Prepared, error)
	PrepareCreateListing(ctx context.Context, in service.CreateListingInput) (*service.Prepared, error)
	PrepareProcessSale(ctx context.Context, in service.ProcessSaleInput) (*service.Prepared, error)
	Submit(ctx context.Context, signedJSON []byte) (string, error)
	Track(ctx context.Context, deployHash string)
	Wait(ctx context.Context, deployHash string) (domain.DeployOutcome, error)
	Outcome(ctx context.Context, deployHash string) (domain.DeployOutcome, error)
}

// NFTViewer reconciles NFT and marketplace state
type NFTViewer interface {
	Reconcile(ctx context.Context, tokenID string) (*domain.NFTView, error)
	Scan(ctx context.Context) ([]domain.NFTView, error)
	Owned(ctx context.Context) ([]domain.NFTView, error)
}

// WalletSession tracks the browser wallet state
type WalletSession interface {
	Apply(ctx context.Context, event domain.WalletEvent) (domain.WalletState, error)
	ActiveAccount(ctx context.Context) (*domain.AccountHash, error)
}

// ViewCache holds the latest reconciled views
type ViewCache interface {
	Get(tokenID string) (domain.NFTView, bool)
	Put(view domain.NFTView)
}

type executor struct {
	deploys DeployService
	viewer  NFTViewer
	wallet  WalletSession
	cache   ViewCache
	store   store.Store
}

// NewExecutor creates the API executor. st may be nil when the catalog store is disabled.
func NewExecutor(deploys DeployService, viewer NFTViewer, wallet WalletSession, cache ViewCache, st store.Store) Executor {
	return &executor{deploys: deploys, viewer: viewer, wallet: wallet, cache: cache, store: st}
}

func (e *executor) GetNFT(ctx context.Context, tokenID string, refresh bool) (*dto.NFTResponse, error) {
	if !refresh {
		if view, ok := e.cache.Get(tokenID); ok {
			resp := dto.MapNFTViewToDTO(view)
			return &resp, nil
		}
	}

	view, err := e.viewer.Reconcile(ctx, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, nil
		}
		return nil, err
	}
	e.cache.Put(*view)

	resp := dto.MapNFTViewToDTO(*view)
	return &resp, nil
}

func (e *executor) ListNFTs(ctx context.Context, owned bool) (*dto.NFTListResponse, error) {
	var views []domain.NFTView
	var err error
	if owned {
		views, err = e.viewer.Owned(ctx)
	} else {
		views, err = e.viewer.Scan(ctx)
	}
	if err != nil {
		return nil, err
	}

	for _, v := range views {
		e.cache.Put(v)
	}
	return dto.MapNFTViewsToDTO(views), nil
}

func preparedResponse(p *service.Prepared, err error) (*dto.PreparedDeployResponse, error) {
	if err != nil {
		return nil, err
	}
	return &dto.PreparedDeployResponse{
		DeployHash: p.Deploy.HashHex(),
		Deploy:     p.JSON,
	}, nil
}

func (e *executor) PrepareMint(ctx context.Context, input service.MintInput) (*dto.PreparedDeployResponse, error) {
	if err := dto.ValidateTokenIDs(input.TokenIDs); err != nil {
		return nil, err
	}
	return preparedResponse(e.deploys.PrepareMint(ctx, input))
}

func (e *executor) PrepareBurn(ctx context.Context, input service.BurnInput) (*dto.PreparedDeployResponse, error) {
	if err := dto.ValidateTokenIDs(input.TokenIDs); err != nil {
		return nil, err
	}
	return preparedResponse(e.deploys.PrepareBurn(ctx, input))
}

func (e *executor) PrepareTransfer(ctx context.Context, input service.TransferInput) (*dto.PreparedDeployResponse, error) {
	if err := dto.ValidateTokenIDs(input.TokenIDs); err != nil {
		return nil, err
	}
	return preparedResponse(e.deploys.PrepareTransfer(ctx, input))
}

func (e *executor) PrepareApprove(ctx context.Context, input service.ApproveInput) (*dto.PreparedDeployResponse, error) {
	if err := dto.ValidateTokenIDs(input.TokenIDs); err != nil {
		return nil, err
	}
	return preparedResponse(e.deploys.PrepareApprove(ctx, input))
}

func (e *executor) PrepareCreateListing(ctx context.Context, input service.CreateListingInput) (*dto.PreparedDeployResponse, error) {
	if err := dto.ValidateTokenIDs(input.TokenIDs); err != nil {
		return nil, err
	}
	return preparedResponse(e.deploys.PrepareCreateListing(ctx, input))
}

func (e *executor) PrepareProcessSale(ctx context.Context, input service.ProcessSaleInput) (*dto.PreparedDeployResponse, error) {
	return preparedResponse(e.deploys.PrepareProcessSale(ctx, input))
}

func (e *executor) SubmitDeploy(ctx context.Context, signedJSON []byte, wait bool) (*dto.DeployResponse, error) {
	hash, err := e.deploys.Submit(ctx, signedJSON)
	if err != nil {
		return nil, err
	}

	if !wait {
		e.deploys.Track(ctx, hash)
		return &dto.DeployResponse{DeployHash: hash, State: string(domain.DeployStateSubmitted)}, nil
	}

	outcome, err := e.deploys.Wait(ctx, hash)
	if err != nil && !errors.Is(err, domain.ErrContractExecution) && !errors.Is(err, domain.ErrDeployTimeout) {
		return nil, err
	}
	return dto.MapOutcomeToDTO(outcome), nil
}

func (e *executor) GetDeploy(ctx context.Context, deployHash string) (*dto.DeployResponse, error) {
	if _, err := domain.ParseHash(deployHash); err != nil {
		return nil, apierrors.NewBadRequestError("Invalid deploy hash", deployHash)
	}

	outcome, err := e.deploys.Outcome(ctx, deployHash)
	if err != nil {
		return nil, err
	}
	return dto.MapOutcomeToDTO(outcome), nil
}

func (e *executor) ApplyWalletEvent(ctx context.Context, event domain.WalletEvent) (*dto.WalletStateResponse, error) {
	state, err := e.wallet.Apply(ctx, event)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	resp := &dto.WalletStateResponse{
		IsConnected: state.IsConnected,
		IsUnlocked:  state.IsUnlocked,
		ActiveKey:   state.ActiveKey,
	}
	account, err := e.wallet.ActiveAccount(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to derive active account", zap.Error(err))
	} else if account != nil {
		resp.ActiveAccount = account.String()
	}
	return resp, nil
}

func (e *executor) ListItems(ctx context.Context, contractHash string, limit int, offset int) (*dto.ItemListResponse, error) {
	if e.store == nil {
		return nil, apierrors.NewNotFoundError("Catalog is disabled")
	}
	if limit <= 0 {
		limit = constants.DEFAULT_ITEMS_LIMIT
	}

	items, err := e.store.ListItems(ctx, store.ItemFilter{
		ContractHash: contractHash,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list items: %v", err))
	}

	resp := &dto.ItemListResponse{Items: make([]dto.ItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = dto.MapItemToDTO(item)
	}
	if len(items) == limit {
		next := offset + limit
		resp.NextOffset = &next
	}
	return resp, nil
}

func (e *executor) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, bool, error) {
	if e.store == nil {
		return nil, false, apierrors.NewNotFoundError("Catalog is disabled")
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	item, created, err := e.store.CreateItem(ctx, store.CreateItemInput{
		ContractHash: req.ContractHash,
		TokenID:      req.TokenID,
		DeployHash:   req.DeployHash,
		Item:         req.Item,
	})
	if err != nil {
		return nil, false, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create item: %v", err))
	}

	resp := dto.MapItemToDTO(*item)
	return &resp, created, nil
}
