package deploy

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
)

// timestampLayout is RFC 3339 with millisecond precision, as printed by the node
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type jsonHeader struct {
	Account      string   `json:"account"`
	Timestamp    string   `json:"timestamp"`
	TTL          string   `json:"ttl"`
	GasPrice     uint64   `json:"gas_price"`
	BodyHash     string   `json:"body_hash"`
	Dependencies []string `json:"dependencies"`
	ChainName    string   `json:"chain_name"`
}

type jsonApproval struct {
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

type jsonItemBody struct {
	ModuleBytes *string      `json:"module_bytes,omitempty"`
	Hash        *string      `json:"hash,omitempty"`
	Name        *string      `json:"name,omitempty"`
	Version     *uint32      `json:"version,omitempty"`
	EntryPoint  *string      `json:"entry_point,omitempty"`
	Args        clvalue.Args `json:"args"`
}

type jsonDeploy struct {
	Hash      string                  `json:"hash"`
	Header    jsonHeader              `json:"header"`
	Payment   map[string]jsonItemBody `json:"payment"`
	Session   map[string]jsonItemBody `json:"session"`
	Approvals []jsonApproval          `json:"approvals"`
}

type jsonEnvelope struct {
	Deploy jsonDeploy `json:"deploy"`
}

func strPtr(s string) *string { return &s }

func itemToJSON(e ExecutableItem) (map[string]jsonItemBody, error) {
	body := jsonItemBody{Args: e.Args}
	if body.Args == nil {
		body.Args = clvalue.Args{}
	}

	switch e.Kind {
	case ItemModuleBytes:
		body.ModuleBytes = strPtr(hex.EncodeToString(e.ModuleBytes))
	case ItemStoredContractByHash:
		body.Hash = strPtr(hex.EncodeToString(e.Hash[:]))
		body.EntryPoint = strPtr(e.EntryPoint)
	case ItemStoredContractByName:
		body.Name = strPtr(e.Name)
		body.EntryPoint = strPtr(e.EntryPoint)
	case ItemStoredVersionedContractByHash:
		body.Hash = strPtr(hex.EncodeToString(e.Hash[:]))
		body.Version = e.Version
		body.EntryPoint = strPtr(e.EntryPoint)
	case ItemStoredVersionedContractByName:
		body.Name = strPtr(e.Name)
		body.Version = e.Version
		body.EntryPoint = strPtr(e.EntryPoint)
	case ItemTransfer:
	default:
		return nil, fmt.Errorf("%w: unsupported executable item %d", domain.ErrInvalidDeploy, e.Kind)
	}
	return map[string]jsonItemBody{e.Kind.String(): body}, nil
}

func itemFromJSON(m map[string]jsonItemBody) (ExecutableItem, error) {
	if len(m) != 1 {
		return ExecutableItem{}, fmt.Errorf("%w: executable item must have exactly one variant", domain.ErrInvalidDeploy)
	}

	for variant, body := range m {
		var kind ItemKind = 255
		for k, name := range itemKindNames {
			if name == variant {
				kind = k
			}
		}
		if kind == 255 {
			return ExecutableItem{}, fmt.Errorf("%w: unknown executable item %q", domain.ErrInvalidDeploy, variant)
		}

		item := ExecutableItem{Kind: kind, Args: body.Args, Version: body.Version}
		if body.ModuleBytes != nil {
			b, err := hex.DecodeString(*body.ModuleBytes)
			if err != nil {
				return ExecutableItem{}, fmt.Errorf("%w: invalid module bytes: %v", domain.ErrInvalidDeploy, err)
			}
			item.ModuleBytes = b
		}
		if body.Hash != nil {
			h, err := decodeHash32(*body.Hash)
			if err != nil {
				return ExecutableItem{}, err
			}
			item.Hash = h
		}
		if body.Name != nil {
			item.Name = *body.Name
		}
		if body.EntryPoint != nil {
			item.EntryPoint = *body.EntryPoint
		}
		return item, nil
	}
	return ExecutableItem{}, nil
}

func decodeHash32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, fmt.Errorf("%w: invalid 32-byte hash %q", domain.ErrInvalidDeploy, s)
	}
	copy(out[:], b)
	return out, nil
}

// ToJSON renders the deploy in the {"deploy": {...}} form accepted by the node and the wallet
func ToJSON(d *Deploy) ([]byte, error) {
	payment, err := itemToJSON(d.Payment)
	if err != nil {
		return nil, err
	}
	session, err := itemToJSON(d.Session)
	if err != nil {
		return nil, err
	}

	deps := make([]string, 0, len(d.Header.Dependencies))
	for _, dep := range d.Header.Dependencies {
		deps = append(deps, hex.EncodeToString(dep[:]))
	}
	approvals := make([]jsonApproval, 0, len(d.Approvals))
	for _, a := range d.Approvals {
		approvals = append(approvals, jsonApproval{
			Signer:    a.Signer.Hex(),
			Signature: hex.EncodeToString(a.Signature),
		})
	}

	return json.Marshal(jsonEnvelope{Deploy: jsonDeploy{
		Hash: d.HashHex(),
		Header: jsonHeader{
			Account:      d.Header.Account.Hex(),
			Timestamp:    d.Header.Timestamp.UTC().Format(timestampLayout),
			TTL:          FormatTTL(d.Header.TTL),
			GasPrice:     d.Header.GasPrice,
			BodyHash:     hex.EncodeToString(d.Header.BodyHash[:]),
			Dependencies: deps,
			ChainName:    d.Header.ChainName,
		},
		Payment:   payment,
		Session:   session,
		Approvals: approvals,
	}})
}

// FromJSON parses the {"deploy": {...}} form and validates hashes and approvals
func FromJSON(data []byte) (*Deploy, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDeploy, err)
	}
	jd := env.Deploy

	account, err := domain.ParsePublicKey(jd.Header.Account)
	if err != nil {
		return nil, fmt.Errorf("%w: header account: %v", domain.ErrInvalidDeploy, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, jd.Header.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: header timestamp: %v", domain.ErrInvalidDeploy, err)
	}
	ttl, err := ParseTTL(jd.Header.TTL)
	if err != nil {
		return nil, fmt.Errorf("%w: header ttl: %v", domain.ErrInvalidDeploy, err)
	}
	bodyHash, err := decodeHash32(jd.Header.BodyHash)
	if err != nil {
		return nil, err
	}
	hash, err := decodeHash32(jd.Hash)
	if err != nil {
		return nil, err
	}

	d := &Deploy{
		Hash: hash,
		Header: Header{
			Account:   account,
			Timestamp: ts.UTC(),
			TTL:       ttl,
			GasPrice:  jd.Header.GasPrice,
			BodyHash:  bodyHash,
			ChainName: jd.Header.ChainName,
		},
	}
	for _, dep := range jd.Header.Dependencies {
		h, err := decodeHash32(dep)
		if err != nil {
			return nil, err
		}
		d.Header.Dependencies = append(d.Header.Dependencies, h)
	}

	if d.Payment, err = itemFromJSON(jd.Payment); err != nil {
		return nil, err
	}
	if d.Session, err = itemFromJSON(jd.Session); err != nil {
		return nil, err
	}

	for i, ja := range jd.Approvals {
		signer, err := domain.ParsePublicKey(ja.Signer)
		if err != nil {
			return nil, fmt.Errorf("%w: approval %d signer: %v", domain.ErrInvalidDeploy, i, err)
		}
		sig, err := hex.DecodeString(ja.Signature)
		if err != nil {
			return nil, fmt.Errorf("%w: approval %d signature: %v", domain.ErrInvalidDeploy, i, err)
		}
		d.Approvals = append(d.Approvals, Approval{Signer: signer, Signature: sig})
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
