package signer

import (
	"context"
	"fmt"

	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// Gateway is the boundary to a wallet that holds the user's keys
//
//go:generate mockgen -source=signer.go -destination=../mocks/signer.go -package=mocks -mock_names=Gateway=MockGateway
type Gateway interface {
	// IsConnected reports whether the wallet is reachable and has granted access
	IsConnected(ctx context.Context) (bool, error)

	// ActivePublicKey returns the key currently selected in the wallet.
	// A locked wallet returns domain.ErrWalletLocked.
	ActivePublicKey(ctx context.Context) (domain.PublicKey, error)

	// Sign returns the deploy JSON with an approval from signerHex appended.
	// A declined prompt returns domain.ErrUserRejectedSigning.
	Sign(ctx context.Context, deployJSON []byte, signerHex string, targetHex string) ([]byte, error)
}

// SignDeploy sends d through the gateway and returns the signed deploy.
// The returned deploy must keep the same hash and carry an approval from the active key.
func SignDeploy(ctx context.Context, gw Gateway, d *deploy.Deploy) (*deploy.Deploy, error) {
	connected, err := gw.IsConnected(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet connection: %w", err)
	}
	if !connected {
		return nil, domain.ErrWalletUnavailable
	}

	key, err := gw.ActivePublicKey(ctx)
	if err != nil {
		return nil, err
	}
	if key.Hex() != d.Header.Account.Hex() {
		return nil, fmt.Errorf("%w: active key %s is not the deploy account %s",
			domain.ErrWalletUnavailable, key.Hex(), d.Header.Account.Hex())
	}

	unsigned, err := deploy.ToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize deploy: %w", err)
	}

	signed, err := gw.Sign(ctx, unsigned, key.Hex(), d.Header.Account.Hex())
	if err != nil {
		return nil, err
	}

	out, err := deploy.FromJSON(signed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signed deploy: %w", err)
	}
	if out.Hash != d.Hash {
		return nil, fmt.Errorf("%w: signed deploy hash %s differs from %s", domain.ErrInvalidDeploy, out.HashHex(), d.HashHex())
	}
	if !out.IsSignedBy(key) {
		return nil, fmt.Errorf("%w: signed deploy has no approval from %s", domain.ErrInvalidDeploy, key.Hex())
	}
	return out, nil
}
