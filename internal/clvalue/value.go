package clvalue

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// KeyVariant is the tag byte of a Key value
type KeyVariant byte

const (
	KeyVariantAccount KeyVariant = 0
	KeyVariantHash    KeyVariant = 1
	KeyVariantURef    KeyVariant = 2
)

// MapEntry is one key/value pair of a Map value, kept in encoding order
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is a typed CL value.
// Integers of every width live in Int; Key, URef, ByteArray and PublicKey payloads live in Raw.
type Value struct {
	Type    Type
	Bool    bool
	Int     *big.Int
	Str     string
	Raw     []byte
	Variant KeyVariant
	Items   []Value
	Entries []MapEntry
}

func Bool(b bool) Value { return Value{Type: TypeBool, Bool: b} }
func I32(v int32) Value { return Value{Type: TypeI32, Int: big.NewInt(int64(v))} }
func I64(v int64) Value { return Value{Type: TypeI64, Int: big.NewInt(v)} }
func U8(v uint8) Value { return Value{Type: TypeU8, Int: new(big.Int).SetUint64(uint64(v))} }
func U32(v uint32) Value { return Value{Type: TypeU32, Int: new(big.Int).SetUint64(uint64(v))} }
func U64(v uint64) Value { return Value{Type: TypeU64, Int: new(big.Int).SetUint64(v)} }
func U128(v *big.Int) Value { return Value{Type: TypeU128, Int: v} }
func U256(v *big.Int) Value { return Value{Type: TypeU256, Int: v} }
func U512(v *big.Int) Value { return Value{Type: TypeU512, Int: v} }
func Unit() Value { return Value{Type: TypeUnit} }
func String(s string) Value { return Value{Type: TypeString, Str: s} }
func ByteArray(b []byte) Value {
	return Value{Type: ByteArrayOf(uint32(len(b))), Raw: append([]byte(nil), b...)}
}

// U256FromString parses a base-10 U256
func U256FromString(s string) (Value, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Value{}, err
	}
	return U256(v), nil
}

// U512FromString parses a base-10 U512
func U512FromString(s string) (Value, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Value{}, err
	}
	return U512(v), nil
}

func parseDecimal(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, &EncodingError{Reason: fmt.Sprintf("%q is not a base-10 integer", s)}
	}
	return v, nil
}

// List builds List<elem>; every item must have type elem at encode time
func List(elem Type, items ...Value) Value {
	return Value{Type: ListOf(elem), Items: items}
}

// Some builds Option<inner> holding v
func Some(v Value) Value {
	return Value{Type: OptionOf(v.Type), Items: []Value{v}}
}

// None builds an empty Option<inner>
func None(inner Type) Value {
	return Value{Type: OptionOf(inner)}
}

// Map builds Map<key, value> in the given entry order
func Map(key, value Type, entries ...MapEntry) Value {
	return Value{Type: MapOf(key, value), Entries: entries}
}

// StringMap builds Map<String,String> with entries sorted by key
func StringMap(m map[string]string) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]MapEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, MapEntry{Key: String(k), Value: String(m[k])})
	}
	return Map(TypeString, TypeString, entries...)
}

// KeyAccount builds Key::Account
func KeyAccount(h domain.AccountHash) Value {
	return Value{Type: TypeKey, Variant: KeyVariantAccount, Raw: append([]byte(nil), h[:]...)}
}

// KeyHash builds Key::Hash
func KeyHash(h [32]byte) Value {
	return Value{Type: TypeKey, Variant: KeyVariantHash, Raw: append([]byte(nil), h[:]...)}
}

// ParseKey parses "account-hash-<hex>" or "hash-<hex>" into a Key
func ParseKey(s string) (Value, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, domain.ACCOUNT_HASH_PREFIX):
		h, err := domain.ParseAccountHash(s)
		if err != nil {
			return Value{}, err
		}
		return KeyAccount(h), nil
	case strings.HasPrefix(s, domain.HASH_PREFIX):
		b, err := hex.DecodeString(strings.TrimPrefix(s, domain.HASH_PREFIX))
		if err != nil || len(b) != 32 {
			return Value{}, fmt.Errorf("invalid hash key %q", s)
		}
		var h [32]byte
		copy(h[:], b)
		return KeyHash(h), nil
	default:
		return Value{}, fmt.Errorf("unsupported key %q", s)
	}
}

// PublicKeyValue builds a PublicKey value
func PublicKeyValue(k domain.PublicKey) Value {
	return Value{Type: TypePublicKey, Raw: k.Bytes()}
}

// AsString returns the String payload
func (v Value) AsString() (string, bool) {
	return v.Str, v.Type.Tag == TagString
}

// AsBigInt returns the integer payload of any integer type
func (v Value) AsBigInt() (*big.Int, bool) {
	switch v.Type.Tag {
	case TagI32, TagI64, TagU8, TagU32, TagU64, TagU128, TagU256, TagU512:
		return v.Int, v.Int != nil
	default:
		return nil, false
	}
}

// AsStringMap returns a Map<String,String> as a Go map
func (v Value) AsStringMap() (map[string]string, bool) {
	if v.Type.Tag != TagMap || !v.Type.Key.Equal(TypeString) || !v.Type.Value.Equal(TypeString) {
		return nil, false
	}
	out := make(map[string]string, len(v.Entries))
	for _, e := range v.Entries {
		out[e.Key.Str] = e.Value.Str
	}
	return out, true
}

// Unwrap returns the value of a Some, false for None or a non-option
func (v Value) Unwrap() (Value, bool) {
	if v.Type.Tag != TagOption || len(v.Items) == 0 {
		return Value{}, false
	}
	return v.Items[0], true
}

// FormatKey renders a Key the way the node does ("account-hash-..", "hash-..", "uref-..-007")
func (v Value) FormatKey() (string, bool) {
	if v.Type.Tag != TagKey {
		return "", false
	}
	switch v.Variant {
	case KeyVariantAccount:
		return domain.ACCOUNT_HASH_PREFIX + hex.EncodeToString(v.Raw), true
	case KeyVariantHash:
		return domain.HASH_PREFIX + hex.EncodeToString(v.Raw), true
	case KeyVariantURef:
		return formatURef(v.Raw), true
	default:
		return "", false
	}
}

func formatURef(raw []byte) string {
	if len(raw) != 33 {
		return "uref-" + hex.EncodeToString(raw)
	}
	return fmt.Sprintf("uref-%s-%03o", hex.EncodeToString(raw[:32]), raw[32])
}

// Equal reports deep equality of type and payload
func (v Value) Equal(o Value) bool {
	if !v.Type.Equal(o.Type) {
		return false
	}
	switch v.Type.Tag {
	case TagBool:
		return v.Bool == o.Bool
	case TagI32, TagI64, TagU8, TagU32, TagU64, TagU128, TagU256, TagU512:
		return v.Int != nil && o.Int != nil && v.Int.Cmp(o.Int) == 0
	case TagString:
		return v.Str == o.Str
	case TagKey:
		return v.Variant == o.Variant && bytes.Equal(v.Raw, o.Raw)
	case TagURef, TagByteArray, TagPublicKey:
		return bytes.Equal(v.Raw, o.Raw)
	case TagOption, TagList:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case TagMap:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for i := range v.Entries {
			if !v.Entries[i].Key.Equal(o.Entries[i].Key) || !v.Entries[i].Value.Equal(o.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Parsed returns the human-readable JSON form the node reports alongside the bytes
func (v Value) Parsed() interface{} {
	switch v.Type.Tag {
	case TagBool:
		return v.Bool
	case TagI32, TagI64, TagU8, TagU32, TagU64:
		if v.Int == nil {
			return nil
		}
		if v.Int.IsInt64() {
			return v.Int.Int64()
		}
		return v.Int.Uint64()
	case TagU128, TagU256, TagU512:
		if v.Int == nil {
			return nil
		}
		return v.Int.String()
	case TagString:
		return v.Str
	case TagKey:
		s, _ := v.FormatKey()
		return s
	case TagURef:
		return formatURef(v.Raw)
	case TagByteArray, TagPublicKey:
		return hex.EncodeToString(v.Raw)
	case TagOption:
		if inner, ok := v.Unwrap(); ok {
			return inner.Parsed()
		}
		return nil
	case TagList:
		out := make([]interface{}, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, item.Parsed())
		}
		return out
	case TagMap:
		out := make([]map[string]interface{}, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, map[string]interface{}{"key": e.Key.Parsed(), "value": e.Value.Parsed()})
		}
		return out
	default:
		return nil
	}
}
