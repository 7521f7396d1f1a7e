// Package reconciler builds the composite NFT view from NFT and marketplace contract state
package reconciler

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
)

//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=NFTReader=MockNFTReader,MarketReader=MockMarketReader,AccountProvider=MockAccountProvider

// NFTReader reads NFT contract state
type NFTReader interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
	OwnerOf(ctx context.Context, tokenID string) (string, error)
	TokenMeta(ctx context.Context, tokenID string) (map[string]string, error)
	Allowance(ctx context.Context, owner string, tokenID string) (string, error)
}

// MarketReader reads marketplace contract state
type MarketReader interface {
	MarketItemHash(ctx context.Context) (string, error)
	MarketItemIDs(ctx context.Context, tokenID string) ([]string, error)
	ItemStatus(ctx context.Context, itemID string) (domain.ListingStatus, error)
	ItemAskingPrice(ctx context.Context, itemID string) (*big.Int, error)
}

// AccountProvider returns the active wallet account, nil when there is none
type AccountProvider interface {
	ActiveAccount(ctx context.Context) (*domain.AccountHash, error)
}

// Names recorded in NFTView.Partial when a non-primary query fails
const (
	PartialActiveAccount = "active_account"
	PartialApproval      = "approval"
	PartialListing       = "listing"
	PartialApprovalHash  = "approval_hash"
)

// maxScanPrealloc bounds the slice capacity taken from the on-chain total supply
const maxScanPrealloc = 1024

// Reconciler combines NFT and marketplace reads into NFTViews
type Reconciler struct {
	nft         NFTReader
	market      MarketReader
	accounts    AccountProvider
	nftContract string
}

// New creates a reconciler. nftContract is the NFT contract hash reported on listings.
func New(nft NFTReader, market MarketReader, accounts AccountProvider, nftContract string) *Reconciler {
	return &Reconciler{
		nft:         nft,
		market:      market,
		accounts:    accounts,
		nftContract: nftContract,
	}
}

// Reconcile reads the current view of one token. Owner and metadata failures are fatal,
// every other failure is logged and recorded in the view's Partial list.
func (r *Reconciler) Reconcile(ctx context.Context, tokenID string) (*domain.NFTView, error) {
	var partial []string
	account, err := r.accounts.ActiveAccount(ctx)
	if err != nil {
		r.partial(ctx, tokenID, PartialActiveAccount, err)
		partial = append(partial, PartialActiveAccount)
		account = nil
	}

	view, err := r.reconcile(ctx, tokenID, account)
	if err != nil {
		return nil, err
	}
	view.Partial = append(partial, view.Partial...)
	return view, nil
}

func (r *Reconciler) reconcile(ctx context.Context, tokenID string, account *domain.AccountHash) (*domain.NFTView, error) {
	owner, err := r.nft.OwnerOf(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner of token %s: %w", tokenID, err)
	}
	meta, err := r.nft.TokenMeta(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of token %s: %w", tokenID, err)
	}

	view := &domain.NFTView{
		NFTItem: domain.NFTItem{
			TokenID: tokenID,
			Meta:    meta,
			Owner:   owner,
		},
	}

	if account != nil {
		view.IsOwner = domain.SameKey(owner, account.String())
		if err := r.approval(ctx, view, account); err != nil {
			r.partial(ctx, tokenID, PartialApproval, err)
			view.Partial = append(view.Partial, PartialApproval)
		}
	}

	listing, err := r.listing(ctx, tokenID)
	if err != nil {
		r.partial(ctx, tokenID, PartialListing, err)
		view.Partial = append(view.Partial, PartialListing)
	} else if listing != nil {
		escrow, err := r.market.MarketItemHash(ctx)
		if err != nil {
			r.partial(ctx, tokenID, PartialApprovalHash, fmt.Errorf("failed to read market item hash: %w", err))
			view.Partial = append(view.Partial, PartialApprovalHash)
		} else {
			listing.ApprovalHash = escrow
		}
	}
	view.Listing = listing

	return view, nil
}

func (r *Reconciler) approval(ctx context.Context, view *domain.NFTView, account *domain.AccountHash) error {
	escrow, err := r.market.MarketItemHash(ctx)
	if err != nil {
		return fmt.Errorf("failed to read market item hash: %w", err)
	}
	spender, err := r.nft.Allowance(ctx, account.String(), view.TokenID)
	if err != nil {
		return fmt.Errorf("failed to read allowance: %w", err)
	}
	view.Approved = spender
	view.IsApproved = domain.SameKey(spender, escrow)
	return nil
}

// listing returns the token's most recent market item, nil when it was never listed
func (r *Reconciler) listing(ctx context.Context, tokenID string) (*domain.MarketListing, error) {
	itemIDs, err := r.market.MarketItemIDs(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read market item ids: %w", err)
	}
	if len(itemIDs) == 0 {
		return nil, nil
	}

	itemID := itemIDs[len(itemIDs)-1]
	status, err := r.market.ItemStatus(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read status of market item %s: %w", itemID, err)
	}
	price, err := r.market.ItemAskingPrice(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read asking price of market item %s: %w", itemID, err)
	}

	return &domain.MarketListing{
		ItemID:      itemID,
		NFTContract: r.nftContract,
		TokenID:     tokenID,
		AskingPrice: price,
		Status:      status,
		Available:   status == domain.ListingStatusAvailable,
	}, nil
}

func (r *Reconciler) partial(ctx context.Context, tokenID, query string, err error) {
	logger.WarnCtx(ctx, "Partial reconciliation",
		zap.String("tokenID", tokenID),
		zap.String("query", query),
		zap.Error(fmt.Errorf("%w: %v", domain.ErrReconciliationPartial, err)))
}

// Scan reconciles every token id in [0, total supply) sequentially.
// Tokens whose owner or metadata cannot be read are skipped; Scan only fails when the supply cannot be read.
func (r *Reconciler) Scan(ctx context.Context) ([]domain.NFTView, error) {
	return r.scan(ctx, nil, false)
}

// ScanWithProgress is Scan with a callback invoked after every token id
func (r *Reconciler) ScanWithProgress(ctx context.Context, progress func(done, total int)) ([]domain.NFTView, error) {
	return r.scan(ctx, progress, false)
}

// Owned returns the scanned views owned by the active account, empty when no wallet is active
func (r *Reconciler) Owned(ctx context.Context) ([]domain.NFTView, error) {
	return r.scan(ctx, nil, true)
}

func (r *Reconciler) scan(ctx context.Context, progress func(done, total int), ownedOnly bool) ([]domain.NFTView, error) {
	supply, err := r.nft.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply: %w", err)
	}
	if !supply.IsInt64() {
		return nil, fmt.Errorf("total supply %s out of range", supply)
	}
	total := int(supply.Int64())

	// the active account is resolved once per scan
	account, err := r.accounts.ActiveAccount(ctx)
	if err != nil {
		r.partial(ctx, "", PartialActiveAccount, err)
		account = nil
	}
	if ownedOnly && account == nil {
		return []domain.NFTView{}, nil
	}

	views := make([]domain.NFTView, 0, min(total, maxScanPrealloc))
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return views, err
		}

		tokenID := fmt.Sprintf("%d", i)
		view, err := r.reconcile(ctx, tokenID, account)
		if progress != nil {
			progress(i+1, total)
		}
		if err != nil {
			logger.WarnCtx(ctx, "Skipping token", zap.String("tokenID", tokenID), zap.Error(err))
			continue
		}
		if ownedOnly && !view.IsOwner {
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}
