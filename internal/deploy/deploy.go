package deploy

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// ItemKind is the tag of an executable deploy item
type ItemKind byte

const (
	ItemModuleBytes                   ItemKind = 0
	ItemStoredContractByHash          ItemKind = 1
	ItemStoredContractByName          ItemKind = 2
	ItemStoredVersionedContractByHash ItemKind = 3
	ItemStoredVersionedContractByName ItemKind = 4
	ItemTransfer                      ItemKind = 5
)

var itemKindNames = map[ItemKind]string{
	ItemModuleBytes:                   "ModuleBytes",
	ItemStoredContractByHash:          "StoredContractByHash",
	ItemStoredContractByName:          "StoredContractByName",
	ItemStoredVersionedContractByHash: "StoredVersionedContractByHash",
	ItemStoredVersionedContractByName: "StoredVersionedContractByName",
	ItemTransfer:                      "Transfer",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ItemKind(%d)", k)
}

// ExecutableItem is the payment or session part of a deploy
type ExecutableItem struct {
	Kind        ItemKind
	ModuleBytes []byte
	Hash        [32]byte
	Name        string
	Version     *uint32
	EntryPoint  string
	Args        clvalue.Args
}

// Bytes returns the canonical serialization of the item
func (e ExecutableItem) Bytes() ([]byte, error) {
	out := []byte{byte(e.Kind)}

	switch e.Kind {
	case ItemModuleBytes:
		out = binary.LittleEndian.AppendUint32(out, uint32(len(e.ModuleBytes)))
		out = append(out, e.ModuleBytes...)
	case ItemStoredContractByHash:
		out = append(out, e.Hash[:]...)
		out = appendString(out, e.EntryPoint)
	case ItemStoredContractByName:
		out = appendString(out, e.Name)
		out = appendString(out, e.EntryPoint)
	case ItemStoredVersionedContractByHash:
		out = append(out, e.Hash[:]...)
		out = appendVersion(out, e.Version)
		out = appendString(out, e.EntryPoint)
	case ItemStoredVersionedContractByName:
		out = appendString(out, e.Name)
		out = appendVersion(out, e.Version)
		out = appendString(out, e.EntryPoint)
	case ItemTransfer:
	default:
		return nil, fmt.Errorf("%w: unsupported executable item %d", domain.ErrInvalidDeploy, e.Kind)
	}

	args, err := e.Args.ToBytes()
	if err != nil {
		return nil, err
	}
	return append(out, args...), nil
}

// Amount returns the "amount" argument, the payment of a standard payment item
func (e ExecutableItem) Amount() (*big.Int, bool) {
	v, ok := e.Args.Get("amount")
	if !ok {
		return nil, false
	}
	return v.AsBigInt()
}

func appendString(out []byte, s string) []byte {
	out = binary.LittleEndian.AppendUint32(out, uint32(len(s)))
	return append(out, s...)
}

func appendVersion(out []byte, version *uint32) []byte {
	if version == nil {
		return append(out, 0)
	}
	return binary.LittleEndian.AppendUint32(append(out, 1), *version)
}

// Header carries the deploy metadata that is hashed into the deploy hash
type Header struct {
	Account      domain.PublicKey
	Timestamp    time.Time
	TTL          time.Duration
	GasPrice     uint64
	BodyHash     [32]byte
	Dependencies [][32]byte
	ChainName    string
}

// Bytes returns the canonical serialization of the header
func (h Header) Bytes() []byte {
	out := h.Account.Bytes()
	out = binary.LittleEndian.AppendUint64(out, uint64(h.Timestamp.UnixMilli()))
	out = binary.LittleEndian.AppendUint64(out, uint64(h.TTL.Milliseconds()))
	out = binary.LittleEndian.AppendUint64(out, h.GasPrice)
	out = append(out, h.BodyHash[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(h.Dependencies)))
	for _, dep := range h.Dependencies {
		out = append(out, dep[:]...)
	}
	return appendString(out, h.ChainName)
}

// Approval is a signature over the deploy hash
type Approval struct {
	Signer    domain.PublicKey
	Signature []byte // algorithm tag || 64-byte signature
}

// Deploy is a signed or unsigned Casper deploy
type Deploy struct {
	Hash      [32]byte
	Header    Header
	Payment   ExecutableItem
	Session   ExecutableItem
	Approvals []Approval
}

// HashHex returns the deploy hash as hex
func (d *Deploy) HashHex() string {
	return hex.EncodeToString(d.Hash[:])
}

// BodyHash computes blake2b-256(payment || session)
func BodyHash(payment, session ExecutableItem) ([32]byte, error) {
	p, err := payment.Bytes()
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to serialize payment: %w", err)
	}
	s, err := session.Bytes()
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to serialize session: %w", err)
	}
	return blake2b.Sum256(append(p, s...)), nil
}

// Seal recomputes the body hash and the deploy hash
func (d *Deploy) Seal() error {
	bodyHash, err := BodyHash(d.Payment, d.Session)
	if err != nil {
		return err
	}
	d.Header.BodyHash = bodyHash
	d.Hash = blake2b.Sum256(d.Header.Bytes())
	return nil
}

// Validate checks the body hash, the deploy hash and every approval signature
func (d *Deploy) Validate() error {
	bodyHash, err := BodyHash(d.Payment, d.Session)
	if err != nil {
		return err
	}
	if bodyHash != d.Header.BodyHash {
		return fmt.Errorf("%w: body hash mismatch", domain.ErrInvalidDeploy)
	}
	if blake2b.Sum256(d.Header.Bytes()) != d.Hash {
		return fmt.Errorf("%w: deploy hash mismatch", domain.ErrInvalidDeploy)
	}
	for i, a := range d.Approvals {
		if err := VerifyApproval(d.Hash, a); err != nil {
			return fmt.Errorf("%w: approval %d: %v", domain.ErrInvalidDeploy, i, err)
		}
	}
	return nil
}

// AddApproval appends a signature after verifying it against the deploy hash
func (d *Deploy) AddApproval(a Approval) error {
	if err := VerifyApproval(d.Hash, a); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDeploy, err)
	}
	d.Approvals = append(d.Approvals, a)
	return nil
}

// IsSignedBy reports whether an approval from key is present
func (d *Deploy) IsSignedBy(key domain.PublicKey) bool {
	for _, a := range d.Approvals {
		if a.Signer.Hex() == key.Hex() {
			return true
		}
	}
	return false
}
