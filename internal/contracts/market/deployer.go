// Package market builds deploys for and reads state from the marketplace contract
package market

import (
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// EntryPointCreateMarketItem lists NFTs for sale
const EntryPointCreateMarketItem = "create_market_item"

// InstallArgs are the session arguments of the market installer
type InstallArgs struct {
	MarketName   string
	MarketSymbol string
	MarketMeta   map[string]string
	ContractName string
}

// Deployer builds unsigned deploys against one marketplace contract
type Deployer struct {
	builder *deploy.Builder
	ref     domain.ContractReference
}

// NewDeployer creates a deployer for the market at ref
func NewDeployer(builder *deploy.Builder, ref domain.ContractReference) *Deployer {
	return &Deployer{builder: builder, ref: ref}
}

// Install builds the module-bytes deploy that installs the market contract
func (d *Deployer) Install(wasm []byte, args InstallArgs, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	runtimeArgs := clvalue.NewArgs().
		Add("market_name", clvalue.String(args.MarketName)).
		Add("market_symbol", clvalue.String(args.MarketSymbol)).
		Add("market_meta", clvalue.StringMap(args.MarketMeta)).
		Add("contract_name", clvalue.String(args.ContractName))
	return d.builder.NewModuleBytes(wasm, runtimeArgs, sender, payment)
}

// CreateMarketItem lists the given NFTs. The four lists are parallel and must have equal length.
func (d *Deployer) CreateMarketItem(
	recipient string,
	itemIDs []string,
	nftContracts []string,
	askingPrices []string,
	tokenIDs []string,
	sender domain.PublicKey,
	payment string,
) (*deploy.Deploy, error) {
	n := len(itemIDs)
	if n == 0 {
		return nil, &clvalue.EncodingError{Arg: "item_ids", Reason: "at least one item is required"}
	}
	if len(nftContracts) != n || len(askingPrices) != n || len(tokenIDs) != n {
		return nil, &clvalue.EncodingError{Arg: "item_ids", Reason: "item lists must have equal length"}
	}

	key, err := contracts.KeyArg("recipient", recipient)
	if err != nil {
		return nil, err
	}
	ids, err := contracts.U256ListArg("item_ids", itemIDs)
	if err != nil {
		return nil, err
	}
	addresses, err := contracts.HashListArg("item_nft_contract_addresses", nftContracts)
	if err != nil {
		return nil, err
	}
	prices, err := contracts.U512ListArg("item_asking_prices", askingPrices)
	if err != nil {
		return nil, err
	}
	tokens, err := contracts.U256ListArg("item_token_ids", tokenIDs)
	if err != nil {
		return nil, err
	}

	args := clvalue.NewArgs().
		Add("recipient", key).
		Add("item_ids", ids).
		Add("item_nft_contract_addresses", addresses).
		Add("item_asking_prices", prices).
		Add("item_token_ids", tokens)
	return d.builder.NewStoredContractCall(d.ref, EntryPointCreateMarketItem, args, sender, payment)
}

// ProcessMarketSale builds the offer-purse session deploy that buys itemID for amount motes
func (d *Deployer) ProcessMarketSale(
	offerPurseWasm []byte,
	recipient string,
	itemID string,
	amount string,
	sender domain.PublicKey,
	payment string,
) (*deploy.Deploy, error) {
	if err := d.ref.Validate(); err != nil {
		return nil, err
	}
	marketHash, err := d.ref.ContractHashBytes()
	if err != nil {
		return nil, err
	}

	key, err := contracts.KeyArg("recipient", recipient)
	if err != nil {
		return nil, err
	}
	id, err := clvalue.U256FromString(itemID)
	if err != nil {
		return nil, &clvalue.EncodingError{Arg: "item_id", Reason: err.Error()}
	}
	price, err := deploy.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	args := clvalue.NewArgs().
		Add("recipient", key).
		Add("item_id", id).
		Add("amount", clvalue.U512(price)).
		Add("market_contract_hash", clvalue.ByteArray(marketHash[:]))
	return d.builder.NewModuleBytes(offerPurseWasm, args, sender, payment)
}
