package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// KeySigner is a Gateway backed by a private key held in process
type KeySigner struct {
	public domain.PublicKey
	ed     ed25519.PrivateKey
	secp   *ecdsa.PrivateKey
}

// NewEd25519Signer accepts a 32-byte seed or a 64-byte private key
func NewEd25519Signer(secret []byte) (*KeySigner, error) {
	var priv ed25519.PrivateKey
	switch len(secret) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(secret)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(append([]byte(nil), secret...))
	default:
		return nil, fmt.Errorf("invalid ed25519 secret length %d", len(secret))
	}

	public, err := domain.NewPublicKey(domain.KeyAlgorithmEd25519, priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &KeySigner{public: public, ed: priv}, nil
}

// NewSecp256k1Signer accepts a 32-byte secp256k1 private scalar
func NewSecp256k1Signer(secret []byte) (*KeySigner, error) {
	priv, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid secp256k1 secret: %w", err)
	}

	public, err := domain.NewPublicKey(domain.KeyAlgorithmSecp256k1, crypto.CompressPubkey(&priv.PublicKey))
	if err != nil {
		return nil, err
	}
	return &KeySigner{public: public, secp: priv}, nil
}

// LoadKeySigner reads a hex-encoded secret from path
func LoadKeySigner(algorithm string, path string) (*KeySigner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret key: %w", err)
	}
	secret, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("secret key is not hex: %w", err)
	}

	switch strings.ToLower(algorithm) {
	case "", "ed25519":
		return NewEd25519Signer(secret)
	case "secp256k1":
		return NewSecp256k1Signer(secret)
	default:
		return nil, fmt.Errorf("unsupported key algorithm %q", algorithm)
	}
}

// PublicKey returns the signer's public key
func (s *KeySigner) PublicKey() domain.PublicKey {
	return s.public
}

func (s *KeySigner) IsConnected(ctx context.Context) (bool, error) {
	return true, nil
}

func (s *KeySigner) ActivePublicKey(ctx context.Context) (domain.PublicKey, error) {
	return s.public, nil
}

// SignHash signs a deploy hash and returns tag || signature
func (s *KeySigner) SignHash(hash [32]byte) ([]byte, error) {
	tag := byte(s.public.Algorithm)
	if s.ed != nil {
		return append([]byte{tag}, ed25519.Sign(s.ed, hash[:])...), nil
	}

	sig, err := crypto.Sign(deploy.Secp256k1Digest(hash), s.secp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	// drop the recovery id
	return append([]byte{tag}, sig[:deploy.SignatureLength]...), nil
}

func (s *KeySigner) Sign(ctx context.Context, deployJSON []byte, signerHex string, targetHex string) ([]byte, error) {
	if !strings.EqualFold(signerHex, s.public.Hex()) {
		return nil, fmt.Errorf("%w: key %s is not held by this signer", domain.ErrWalletUnavailable, signerHex)
	}

	d, err := deploy.FromJSON(deployJSON)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(targetHex, d.Header.Account.Hex()) {
		return nil, fmt.Errorf("%w: target %s is not the deploy account", domain.ErrInvalidDeploy, targetHex)
	}

	sig, err := s.SignHash(d.Hash)
	if err != nil {
		return nil, err
	}
	if err := d.AddApproval(deploy.Approval{Signer: s.public, Signature: sig}); err != nil {
		return nil, err
	}
	return deploy.ToJSON(d)
}
