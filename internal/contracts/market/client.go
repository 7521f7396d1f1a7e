package market

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

// Named keys and dictionaries of the marketplace contract
const (
	NamedKeyMarketName      = "market_name"
	NamedKeyItemTotalSupply = "item_total_supply"
	NamedKeyMarketItemHash  = "market_item_hash"

	DictNFTMarketItemIDs = "nft_market_item_ids"
	DictItemStatuses     = "item_statuses"
	DictItemAskingPrices = "item_asking_prices"
)

const constantsCacheSize = 16

// Client reads marketplace state through the node
type Client struct {
	rpc       casper.Client
	ref       domain.ContractReference
	constants *lru.Cache[string, string]
}

// NewClient creates a reader for the market at ref
func NewClient(rpc casper.Client, ref domain.ContractReference) (*Client, error) {
	cache, err := lru.New[string, string](constantsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create constants cache: %w", err)
	}
	return &Client{rpc: rpc, ref: ref, constants: cache}, nil
}

// Reference returns the contract reference the client reads
func (c *Client) Reference() domain.ContractReference {
	return c.ref
}

// Name returns the market name
func (c *Client) Name(ctx context.Context) (string, error) {
	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, NamedKeyMarketName)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("named key %s is %s, not String", NamedKeyMarketName, v.Type)
	}
	return s, nil
}

// TotalSupply returns the number of market items ever created
func (c *Client) TotalSupply(ctx context.Context) (*big.Int, error) {
	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, NamedKeyItemTotalSupply)
	if err != nil {
		return nil, err
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, fmt.Errorf("named key %s is %s, not an integer", NamedKeyItemTotalSupply, v.Type)
	}
	return n, nil
}

// MarketItemHash returns the escrow identity NFTs must be approved to before listing.
// The value never changes for a deployed market, so it is cached after the first read.
func (c *Client) MarketItemHash(ctx context.Context) (string, error) {
	if h, ok := c.constants.Get(NamedKeyMarketItemHash); ok {
		return h, nil
	}

	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, NamedKeyMarketItemHash)
	if err != nil {
		return "", err
	}
	h, ok := v.FormatKey()
	if !ok {
		// older markets store the raw account hash bytes
		if v.Type.Tag != clvalue.TagByteArray || len(v.Raw) != 32 {
			return "", fmt.Errorf("named key %s is %s, not Key", NamedKeyMarketItemHash, v.Type)
		}
		h = domain.ACCOUNT_HASH_PREFIX + hex.EncodeToString(v.Raw)
	}
	c.constants.Add(NamedKeyMarketItemHash, h)
	return h, nil
}

// MarketItemIDs returns the market item ids created for an NFT token, oldest first
func (c *Client) MarketItemIDs(ctx context.Context, tokenID string) ([]string, error) {
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictNFTMarketItemIDs, tokenID)
	if err != nil || !found {
		return nil, err
	}

	ids := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		n, ok := item.AsBigInt()
		if !ok {
			return nil, fmt.Errorf("market item id of token %s is %s, not an integer", tokenID, item.Type)
		}
		ids = append(ids, n.String())
	}
	return ids, nil
}

// ItemStatus returns the status of a market item
func (c *Client) ItemStatus(ctx context.Context, itemID string) (domain.ListingStatus, error) {
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictItemStatuses, itemID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("market item %s has no status", itemID)
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("status of market item %s is %s, not String", itemID, v.Type)
	}
	return domain.ListingStatus(s), nil
}

// ItemAskingPrice returns the asking price of a market item in motes
func (c *Client) ItemAskingPrice(ctx context.Context, itemID string) (*big.Int, error) {
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictItemAskingPrices, itemID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("market item %s has no asking price", itemID)
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, fmt.Errorf("asking price of market item %s is %s, not an integer", itemID, v.Type)
	}
	return n, nil
}
