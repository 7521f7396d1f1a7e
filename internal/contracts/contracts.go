// Package contracts holds the argument and state helpers shared by the contract clients
package contracts

import (
	"context"
	"fmt"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

// KeyArg parses a formatted key ("account-hash-..", "hash-..") or a public key hex into a Key argument
func KeyArg(name string, s string) (clvalue.Value, error) {
	if v, err := clvalue.ParseKey(s); err == nil {
		return v, nil
	}
	pk, err := domain.ParsePublicKey(s)
	if err != nil {
		return clvalue.Value{}, &clvalue.EncodingError{Arg: name, Reason: fmt.Sprintf("%q is neither a key nor a public key", s)}
	}
	return clvalue.KeyAccount(pk.AccountHash()), nil
}

// FormatKeyArg normalizes a key or public key to its formatted key string
func FormatKeyArg(s string) (string, error) {
	v, err := KeyArg("key", s)
	if err != nil {
		return "", err
	}
	formatted, _ := v.FormatKey()
	return formatted, nil
}

// U256ListArg builds List<U256> from base-10 strings
func U256ListArg(name string, values []string) (clvalue.Value, error) {
	items := make([]clvalue.Value, 0, len(values))
	for _, s := range values {
		v, err := clvalue.U256FromString(s)
		if err != nil {
			return clvalue.Value{}, &clvalue.EncodingError{Arg: name, Reason: err.Error()}
		}
		items = append(items, v)
	}
	return clvalue.List(clvalue.TypeU256, items...), nil
}

// U512ListArg builds List<U512> from base-10 strings
func U512ListArg(name string, values []string) (clvalue.Value, error) {
	items := make([]clvalue.Value, 0, len(values))
	for _, s := range values {
		v, err := clvalue.U512FromString(s)
		if err != nil {
			return clvalue.Value{}, &clvalue.EncodingError{Arg: name, Reason: err.Error()}
		}
		items = append(items, v)
	}
	return clvalue.List(clvalue.TypeU512, items...), nil
}

// HashListArg builds List<ByteArray(32)> from contract hashes
func HashListArg(name string, hashes []string) (clvalue.Value, error) {
	items := make([]clvalue.Value, 0, len(hashes))
	for _, h := range hashes {
		b, err := domain.ParseHash(h)
		if err != nil {
			return clvalue.Value{}, &clvalue.EncodingError{Arg: name, Reason: fmt.Sprintf("invalid contract hash %q", h)}
		}
		items = append(items, clvalue.ByteArray(b[:]))
	}
	return clvalue.List(clvalue.ByteArrayOf(32), items...), nil
}

// NamedValue reads a named key of the contract, unwrapping an Option
func NamedValue(ctx context.Context, rpc casper.Client, ref domain.ContractReference, name string) (clvalue.Value, error) {
	sv, err := rpc.QueryContractData(ctx, ref.ContractKey(), []string{name})
	if err != nil {
		return clvalue.Value{}, err
	}
	v, err := sv.Value()
	if err != nil {
		return clvalue.Value{}, fmt.Errorf("failed to decode named key %s: %w", name, err)
	}
	if inner, ok := v.Unwrap(); ok {
		return inner, nil
	}
	return v, nil
}

// DictionaryValue reads dict[itemKey] of the contract. found is false when the item is absent or None.
func DictionaryValue(ctx context.Context, rpc casper.Client, ref domain.ContractReference, dict string, itemKey string) (v clvalue.Value, found bool, err error) {
	sv, err := rpc.GetDictionaryItem(ctx, ref.ContractHash, dict, itemKey)
	if err != nil {
		if casper.IsNotFound(err) {
			return clvalue.Value{}, false, nil
		}
		return clvalue.Value{}, false, err
	}
	v, err = sv.Value()
	if err != nil {
		return clvalue.Value{}, false, fmt.Errorf("failed to decode %s[%s]: %w", dict, itemKey, err)
	}
	if v.Type.Tag == clvalue.TagOption {
		inner, ok := v.Unwrap()
		return inner, ok, nil
	}
	return v, true, nil
}
