package domain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// KeyAlgorithm is the tag byte that prefixes a public key in its hex form
type KeyAlgorithm byte

const (
	KeyAlgorithmEd25519   KeyAlgorithm = 0x01
	KeyAlgorithmSecp256k1 KeyAlgorithm = 0x02
)

// Name returns the lower-case algorithm name used in account hash derivation
func (a KeyAlgorithm) Name() string {
	switch a {
	case KeyAlgorithmEd25519:
		return "ed25519"
	case KeyAlgorithmSecp256k1:
		return "secp256k1"
	default:
		return ""
	}
}

// keyLength returns the raw key length for the algorithm
func (a KeyAlgorithm) keyLength() int {
	switch a {
	case KeyAlgorithmEd25519:
		return 32
	case KeyAlgorithmSecp256k1:
		return 33
	default:
		return 0
	}
}

// PublicKey is an account's public key with its algorithm tag
type PublicKey struct {
	Algorithm KeyAlgorithm
	Raw       []byte
}

// NewPublicKey validates raw key bytes for the algorithm
func NewPublicKey(algorithm KeyAlgorithm, raw []byte) (PublicKey, error) {
	expected := algorithm.keyLength()
	if expected == 0 {
		return PublicKey{}, fmt.Errorf("unsupported key algorithm: %d", algorithm)
	}
	if len(raw) != expected {
		return PublicKey{}, fmt.Errorf("invalid %s key length: %d", algorithm.Name(), len(raw))
	}
	if algorithm == KeyAlgorithmSecp256k1 {
		if _, err := crypto.DecompressPubkey(raw); err != nil {
			return PublicKey{}, fmt.Errorf("invalid secp256k1 key: %w", err)
		}
	}

	key := make([]byte, len(raw))
	copy(key, raw)
	return PublicKey{Algorithm: algorithm, Raw: key}, nil
}

// ParsePublicKey parses the tagged hex form (e.g. "01abcd...")
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(b) < 1 {
		return PublicKey{}, fmt.Errorf("empty public key")
	}
	return NewPublicKey(KeyAlgorithm(b[0]), b[1:])
}

// Bytes returns tag || key
func (k PublicKey) Bytes() []byte {
	out := make([]byte, 0, len(k.Raw)+1)
	out = append(out, byte(k.Algorithm))
	return append(out, k.Raw...)
}

// Hex returns the tagged hex form
func (k PublicKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

// IsZero reports whether the key was never set
func (k PublicKey) IsZero() bool {
	return len(k.Raw) == 0
}

// AccountHash derives blake2b-256(algorithm name || 0x00 || key)
func (k PublicKey) AccountHash() AccountHash {
	preimage := make([]byte, 0, len(k.Algorithm.Name())+1+len(k.Raw))
	preimage = append(preimage, []byte(k.Algorithm.Name())...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, k.Raw...)
	return AccountHash(blake2b.Sum256(preimage))
}

// AccountHash is the on-chain ownership key derived from a public key
type AccountHash [32]byte

// ParseAccountHash accepts "account-hash-<hex>" or bare hex
func ParseAccountHash(s string) (AccountHash, error) {
	var h AccountHash
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ACCOUNT_HASH_PREFIX))
	if err != nil {
		return h, fmt.Errorf("invalid account hash hex: %w", err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invalid account hash length: %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Hex returns the bare hex form
func (h AccountHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String returns the prefixed form used by the node
func (h AccountHash) String() string {
	return ACCOUNT_HASH_PREFIX + h.Hex()
}

// NormalizeHash strips the node's key prefixes and lower-cases a 32-byte hash string
func NormalizeHash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, HASH_PREFIX)
	s = strings.TrimPrefix(s, CONTRACT_PACKAGE_WASM_PREFIX)
	return s
}

// ContractReference identifies a deployed contract instance
type ContractReference struct {
	ContractHash        string `json:"contract_hash" mapstructure:"contract_hash"`
	ContractPackageHash string `json:"contract_package_hash" mapstructure:"contract_package_hash"`
}

// Validate checks that both hashes were set and are 32-byte hex strings
func (r ContractReference) Validate() error {
	if r.ContractHash == "" || r.ContractPackageHash == "" {
		return ErrMissingContractReference
	}
	if _, err := decodeHash(r.ContractHash); err != nil {
		return fmt.Errorf("invalid contract hash: %w", err)
	}
	if _, err := decodeHash(r.ContractPackageHash); err != nil {
		return fmt.Errorf("invalid contract package hash: %w", err)
	}
	return nil
}

// ContractHashBytes returns the 32 raw bytes of the contract hash
func (r ContractReference) ContractHashBytes() ([32]byte, error) {
	return decodeHash(r.ContractHash)
}

// ContractKey returns the "hash-" prefixed contract hash used by state queries
func (r ContractReference) ContractKey() string {
	return HASH_PREFIX + NormalizeHash(r.ContractHash)
}

// SameKey compares two formatted keys case-insensitively
func SameKey(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// MatchesPackage compares a package hash case-insensitively, ignoring prefixes
func (r ContractReference) MatchesPackage(packageHash string) bool {
	return NormalizeHash(r.ContractPackageHash) == NormalizeHash(packageHash)
}

// ParseHash decodes a 32-byte hash with or without the node's key prefixes
func ParseHash(s string) ([32]byte, error) {
	return decodeHash(s)
}

func decodeHash(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(NormalizeHash(s))
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

// DeployState is the lifecycle state of a submitted deploy
type DeployState string

const (
	DeployStateSubmitted DeployState = "submitted"
	DeployStatePolling   DeployState = "polling"
	DeployStateSuccess   DeployState = "success"
	DeployStateFailure   DeployState = "failure"
	DeployStateTimedOut  DeployState = "timed_out"
)

// IsTerminal reports whether no further transition can happen
func (s DeployState) IsTerminal() bool {
	return s == DeployStateSuccess || s == DeployStateFailure || s == DeployStateTimedOut
}

// DeployOutcome is the observed result of a deploy
type DeployOutcome struct {
	DeployHash   string      `json:"deploy_hash"`
	State        DeployState `json:"state"`
	BlockHash    string      `json:"block_hash,omitempty"`
	Cost         string      `json:"cost,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// NFTItem is a CEP-47 token as stored by the NFT contract.
// Owner and Approved hold formatted keys ("account-hash-..." or "hash-...").
type NFTItem struct {
	TokenID  string            `json:"token_id"`
	Meta     map[string]string `json:"meta"`
	Owner    string            `json:"owner"`
	Approved string            `json:"approved,omitempty"`
}

// ListingStatus is the marketplace item status
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// MarketListing is a marketplace item referencing an NFT
type MarketListing struct {
	ItemID       string        `json:"item_id"`
	NFTContract  string        `json:"nft_contract,omitempty"`
	TokenID      string        `json:"token_id"`
	AskingPrice  *big.Int      `json:"asking_price,omitempty"`
	Status       ListingStatus `json:"status"`
	Available    bool          `json:"available"`
	ApprovalHash string        `json:"approval_hash,omitempty"`
}

// NFTView is the reconciled composite of NFT and marketplace state.
// IsOwner and IsApproved are relative to the active account at query time.
type NFTView struct {
	NFTItem
	IsOwner    bool           `json:"is_owner"`
	IsApproved bool           `json:"is_approved"`
	Listing    *MarketListing `json:"listing,omitempty"`
	Partial    []string       `json:"partial,omitempty"`
}

// EventKind is a CEP-47 event_type tag
type EventKind string

const (
	EventKindMintOne        EventKind = "cep47_mint_one"
	EventKindTransferToken  EventKind = "cep47_transfer_token"
	EventKindBurnOne        EventKind = "cep47_burn_one"
	EventKindMetadataUpdate EventKind = "cep47_metadata_update"
	EventKindApproveToken   EventKind = "cep47_approve_token"
)

// AllEventKinds lists every CEP-47 event kind
var AllEventKinds = []EventKind{
	EventKindMintOne,
	EventKindTransferToken,
	EventKindBurnOne,
	EventKindMetadataUpdate,
	EventKindApproveToken,
}

// ContractEvent is a decoded contract event taken from a deploy's write transforms
type ContractEvent struct {
	ID                  string            `json:"id"`
	Kind                EventKind         `json:"event_type"`
	ContractPackageHash string            `json:"contract_package_hash"`
	DeployHash          string            `json:"deploy_hash"`
	StreamID            string            `json:"stream_id,omitempty"`
	Payload             map[string]string `json:"payload"`
	ReceivedAt          time.Time         `json:"received_at"`
}

// TokenID returns the token_id carried by the payload, if any
func (e *ContractEvent) TokenID() (string, bool) {
	id, ok := e.Payload["token_id"]
	return id, ok && id != ""
}

// WalletEventType is a signer DOM event name
type WalletEventType string

const (
	WalletEventConnected        WalletEventType = "signer:connected"
	WalletEventDisconnected     WalletEventType = "signer:disconnected"
	WalletEventLocked           WalletEventType = "signer:locked"
	WalletEventUnlocked         WalletEventType = "signer:unlocked"
	WalletEventActiveKeyChanged WalletEventType = "signer:activeKeyChanged"
	WalletEventTabUpdated       WalletEventType = "signer:tabUpdated"
	WalletEventInitialState     WalletEventType = "signer:initialState"
)

// IsValid checks the event type against the known signer events
func (t WalletEventType) IsValid() bool {
	switch t {
	case WalletEventConnected, WalletEventDisconnected, WalletEventLocked, WalletEventUnlocked,
		WalletEventActiveKeyChanged, WalletEventTabUpdated, WalletEventInitialState:
		return true
	default:
		return false
	}
}

// WalletState is the detail payload carried by every signer event
type WalletState struct {
	IsConnected bool   `json:"isConnected"`
	IsUnlocked  bool   `json:"isUnlocked"`
	ActiveKey   string `json:"activeKey"`
}

// WalletEvent is a signer event forwarded by the browser
type WalletEvent struct {
	Type   WalletEventType `json:"type"`
	Detail WalletState     `json:"detail"`
}
