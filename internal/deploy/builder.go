package deploy

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
)

const wasmMIME = "application/wasm"

// Params holds the chain-wide deploy settings
type Params struct {
	ChainName string
	GasPrice  uint64
	TTL       time.Duration
}

// Builder produces unsigned deploys
type Builder struct {
	params Params
	clock  adapter.Clock
}

// NewBuilder creates a deploy builder, filling unset params with defaults
func NewBuilder(params Params, clock adapter.Clock) *Builder {
	if params.ChainName == "" {
		params.ChainName = domain.DEFAULT_CHAIN_NAME
	}
	if params.GasPrice == 0 {
		params.GasPrice = domain.DEFAULT_GAS_PRICE
	}
	if params.TTL <= 0 {
		params.TTL = domain.DEFAULT_DEPLOY_TTL
	}
	return &Builder{params: params, clock: clock}
}

// Params returns the effective builder settings
func (b *Builder) Params() Params {
	return b.params
}

// ParseAmount parses a positive base-10 motes amount
func ParseAmount(amount string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidAmount, amount)
	}
	if v.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, v)
	}
	return v, nil
}

// StandardPayment builds the module-bytes payment item carrying only "amount"
func StandardPayment(amount string) (ExecutableItem, error) {
	v, err := ParseAmount(amount)
	if err != nil {
		return ExecutableItem{}, err
	}
	return ExecutableItem{
		Kind:        ItemModuleBytes,
		ModuleBytes: []byte{},
		Args:        clvalue.NewArgs().Add("amount", clvalue.U512(v)),
	}, nil
}

// NewStoredContractCall builds a deploy that calls entryPoint on a stored contract
func (b *Builder) NewStoredContractCall(
	ref domain.ContractReference,
	entryPoint string,
	args clvalue.Args,
	sender domain.PublicKey,
	paymentAmount string,
) (*Deploy, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if entryPoint == "" {
		return nil, fmt.Errorf("%w: entry point is required", domain.ErrInvalidDeploy)
	}
	hash, err := ref.ContractHashBytes()
	if err != nil {
		return nil, err
	}

	session := ExecutableItem{
		Kind:       ItemStoredContractByHash,
		Hash:       hash,
		EntryPoint: entryPoint,
		Args:       args,
	}
	return b.build(sender, paymentAmount, session)
}

// NewModuleBytes builds a deploy that runs the given WASM module as session code
func (b *Builder) NewModuleBytes(
	wasm []byte,
	args clvalue.Args,
	sender domain.PublicKey,
	paymentAmount string,
) (*Deploy, error) {
	if len(wasm) == 0 || !mimetype.Detect(wasm).Is(wasmMIME) {
		return nil, domain.ErrInvalidWasm
	}

	session := ExecutableItem{
		Kind:        ItemModuleBytes,
		ModuleBytes: wasm,
		Args:        args,
	}
	return b.build(sender, paymentAmount, session)
}

func (b *Builder) build(sender domain.PublicKey, paymentAmount string, session ExecutableItem) (*Deploy, error) {
	if sender.IsZero() {
		return nil, fmt.Errorf("%w: sender public key is required", domain.ErrInvalidDeploy)
	}

	payment, err := StandardPayment(paymentAmount)
	if err != nil {
		return nil, err
	}

	d := &Deploy{
		Header: Header{
			Account:      sender,
			Timestamp:    b.clock.Now().UTC().Truncate(time.Millisecond),
			TTL:          b.params.TTL,
			GasPrice:     b.params.GasPrice,
			Dependencies: [][32]byte{},
			ChainName:    b.params.ChainName,
		},
		Payment: payment,
		Session: session,
	}
	if err := d.Seal(); err != nil {
		return nil, err
	}
	return d, nil
}
