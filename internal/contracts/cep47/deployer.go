// Package cep47 builds deploys for and reads state from a CEP-47 NFT contract
package cep47

import (
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// Entry points of the NFT contract
const (
	EntryPointMint     = "mint"
	EntryPointBurn     = "burn"
	EntryPointTransfer = "transfer"
	EntryPointApprove  = "approve"
)

// InstallArgs are the session arguments of the contract installer
type InstallArgs struct {
	Name         string
	Symbol       string
	Meta         map[string]string
	ContractName string
}

// Deployer builds unsigned deploys against one NFT contract
type Deployer struct {
	builder *deploy.Builder
	ref     domain.ContractReference
}

// NewDeployer creates a deployer for the contract at ref
func NewDeployer(builder *deploy.Builder, ref domain.ContractReference) *Deployer {
	return &Deployer{builder: builder, ref: ref}
}

// Install builds the module-bytes deploy that installs the contract
func (d *Deployer) Install(wasm []byte, args InstallArgs, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	runtimeArgs := clvalue.NewArgs().
		Add("name", clvalue.String(args.Name)).
		Add("symbol", clvalue.String(args.Symbol)).
		Add("meta", clvalue.StringMap(args.Meta)).
		Add("contract_name", clvalue.String(args.ContractName))
	return d.builder.NewModuleBytes(wasm, runtimeArgs, sender, payment)
}

// Mint mints ids with their metadata to recipient
func (d *Deployer) Mint(recipient string, ids []string, metas []map[string]string, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	if len(ids) == 0 {
		return nil, &clvalue.EncodingError{Arg: "token_ids", Reason: "at least one token id is required"}
	}
	if len(metas) != len(ids) {
		return nil, &clvalue.EncodingError{Arg: "token_metas", Reason: "one metadata map is required per token id"}
	}

	key, err := contracts.KeyArg("recipient", recipient)
	if err != nil {
		return nil, err
	}
	tokenIDs, err := contracts.U256ListArg("token_ids", ids)
	if err != nil {
		return nil, err
	}
	metaValues := make([]clvalue.Value, 0, len(metas))
	for _, m := range metas {
		metaValues = append(metaValues, clvalue.StringMap(m))
	}

	args := clvalue.NewArgs().
		Add("recipient", key).
		Add("token_ids", tokenIDs).
		Add("token_metas", clvalue.List(clvalue.MapOf(clvalue.TypeString, clvalue.TypeString), metaValues...))
	return d.builder.NewStoredContractCall(d.ref, EntryPointMint, args, sender, payment)
}

// Burn burns ids owned by owner
func (d *Deployer) Burn(owner string, ids []string, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	return d.keyAndIDs(EntryPointBurn, "owner", owner, ids, sender, payment)
}

// Transfer moves ids to recipient
func (d *Deployer) Transfer(recipient string, ids []string, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	return d.keyAndIDs(EntryPointTransfer, "recipient", recipient, ids, sender, payment)
}

// Approve lets spender transfer ids on the owner's behalf
func (d *Deployer) Approve(spender string, ids []string, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	return d.keyAndIDs(EntryPointApprove, "spender", spender, ids, sender, payment)
}

func (d *Deployer) keyAndIDs(entryPoint, keyName, key string, ids []string, sender domain.PublicKey, payment string) (*deploy.Deploy, error) {
	if len(ids) == 0 {
		return nil, &clvalue.EncodingError{Arg: "token_ids", Reason: "at least one token id is required"}
	}
	k, err := contracts.KeyArg(keyName, key)
	if err != nil {
		return nil, err
	}
	tokenIDs, err := contracts.U256ListArg("token_ids", ids)
	if err != nil {
		return nil, err
	}

	args := clvalue.NewArgs().
		Add(keyName, k).
		Add("token_ids", tokenIDs)
	return d.builder.NewStoredContractCall(d.ref, entryPoint, args, sender, payment)
}
