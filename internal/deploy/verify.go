package deploy

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// SignatureLength is the raw signature size for both supported algorithms
const SignatureLength = 64

// Secp256k1Digest is the message actually signed by secp256k1 keys
func Secp256k1Digest(hash [32]byte) []byte {
	digest := sha256.Sum256(hash[:])
	return digest[:]
}

// VerifyApproval checks an approval signature against the deploy hash
func VerifyApproval(hash [32]byte, a Approval) error {
	if len(a.Signature) != SignatureLength+1 {
		return fmt.Errorf("signature must be %d bytes, got %d", SignatureLength+1, len(a.Signature))
	}
	if domain.KeyAlgorithm(a.Signature[0]) != a.Signer.Algorithm {
		return fmt.Errorf("signature tag %d does not match signer algorithm %d", a.Signature[0], a.Signer.Algorithm)
	}
	sig := a.Signature[1:]

	switch a.Signer.Algorithm {
	case domain.KeyAlgorithmEd25519:
		if !ed25519.Verify(ed25519.PublicKey(a.Signer.Raw), hash[:], sig) {
			return fmt.Errorf("invalid ed25519 signature")
		}
	case domain.KeyAlgorithmSecp256k1:
		if !crypto.VerifySignature(a.Signer.Raw, Secp256k1Digest(hash), sig) {
			return fmt.Errorf("invalid secp256k1 signature")
		}
	default:
		return fmt.Errorf("unsupported signer algorithm %d", a.Signer.Algorithm)
	}
	return nil
}
