package cep47

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

// Named keys and dictionaries of the NFT contract
const (
	NamedKeyName        = "name"
	NamedKeySymbol      = "symbol"
	NamedKeyMeta        = "meta"
	NamedKeyTotalSupply = "total_supply"

	DictOwners     = "owners"
	DictMetadata   = "metadata"
	DictAllowances = "allowances"
	DictBalances   = "balances"
)

// Client reads NFT contract state through the node
type Client struct {
	rpc casper.Client
	ref domain.ContractReference
}

// NewClient creates a reader for the contract at ref
func NewClient(rpc casper.Client, ref domain.ContractReference) *Client {
	return &Client{rpc: rpc, ref: ref}
}

// Reference returns the contract reference the client reads
func (c *Client) Reference() domain.ContractReference {
	return c.ref
}

func (c *Client) namedString(ctx context.Context, name string) (string, error) {
	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("named key %s is %s, not String", name, v.Type)
	}
	return s, nil
}

// Name returns the collection name
func (c *Client) Name(ctx context.Context) (string, error) {
	return c.namedString(ctx, NamedKeyName)
}

// Symbol returns the collection symbol
func (c *Client) Symbol(ctx context.Context) (string, error) {
	return c.namedString(ctx, NamedKeySymbol)
}

// Meta returns the collection metadata
func (c *Client) Meta(ctx context.Context) (map[string]string, error) {
	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, NamedKeyMeta)
	if err != nil {
		return nil, err
	}
	m, ok := v.AsStringMap()
	if !ok {
		return nil, fmt.Errorf("named key %s is %s, not Map<String,String>", NamedKeyMeta, v.Type)
	}
	return m, nil
}

// TotalSupply returns the number of minted tokens
func (c *Client) TotalSupply(ctx context.Context) (*big.Int, error) {
	v, err := contracts.NamedValue(ctx, c.rpc, c.ref, NamedKeyTotalSupply)
	if err != nil {
		return nil, err
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, fmt.Errorf("named key %s is %s, not an integer", NamedKeyTotalSupply, v.Type)
	}
	return n, nil
}

// OwnerOf returns the formatted key owning tokenID
func (c *Client) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictOwners, tokenID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: token %s has no owner", domain.ErrTokenNotFound, tokenID)
	}
	owner, ok := v.FormatKey()
	if !ok {
		return "", fmt.Errorf("owner of token %s is %s, not Key", tokenID, v.Type)
	}
	return owner, nil
}

// TokenMeta returns the metadata of tokenID
func (c *Client) TokenMeta(ctx context.Context, tokenID string) (map[string]string, error) {
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictMetadata, tokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: token %s has no metadata", domain.ErrTokenNotFound, tokenID)
	}
	meta, ok := v.AsStringMap()
	if !ok {
		return nil, fmt.Errorf("metadata of token %s is %s, not Map<String,String>", tokenID, v.Type)
	}
	return meta, nil
}

// AllowanceKey derives the allowances dictionary item key: hex(blake2b-256(Key(owner) || String(tokenID)))
func AllowanceKey(owner string, tokenID string) (string, error) {
	key, err := contracts.KeyArg("owner", owner)
	if err != nil {
		return "", err
	}
	keyBytes, err := clvalue.Encode(key)
	if err != nil {
		return "", err
	}
	idBytes, err := clvalue.Encode(clvalue.String(tokenID))
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(append(keyBytes, idBytes...))
	return hex.EncodeToString(sum[:]), nil
}

// Allowance returns the key approved to spend tokenID for owner, "" when there is none
func (c *Client) Allowance(ctx context.Context, owner string, tokenID string) (string, error) {
	itemKey, err := AllowanceKey(owner, tokenID)
	if err != nil {
		return "", err
	}
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictAllowances, itemKey)
	if err != nil || !found {
		return "", err
	}
	spender, ok := v.FormatKey()
	if !ok {
		return "", fmt.Errorf("allowance of token %s is %s, not Key", tokenID, v.Type)
	}
	return spender, nil
}

// BalanceKey derives the balances dictionary item key: base64(Key(owner))
func BalanceKey(owner string) (string, error) {
	key, err := contracts.KeyArg("owner", owner)
	if err != nil {
		return "", err
	}
	b, err := clvalue.Encode(key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// BalanceOf returns the number of tokens held by owner
func (c *Client) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	itemKey, err := BalanceKey(owner)
	if err != nil {
		return nil, err
	}
	v, found, err := contracts.DictionaryValue(ctx, c.rpc, c.ref, DictBalances, itemKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return big.NewInt(0), nil
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, fmt.Errorf("balance of %s is %s, not an integer", owner, v.Type)
	}
	return n, nil
}
