package clvalue

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Decode parses data as a value of type t; every byte must be consumed
func Decode(t Type, data []byte) (Value, error) {
	v, rest, err := decodeValue(t, data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("%d trailing bytes after %s", len(rest), t)
	}
	return v, nil
}

// FromBytes parses a complete CLValue: u32 length, value bytes, type descriptor
func FromBytes(data []byte) (Value, error) {
	if len(data) < 4 {
		return Value{}, fmt.Errorf("truncated cl value")
	}
	n := binary.LittleEndian.Uint32(data)
	if uint64(len(data)-4) < uint64(n) {
		return Value{}, fmt.Errorf("truncated cl value body")
	}
	body, typeBytes := data[4:4+n], data[4+n:]

	t, rest, err := decodeType(typeBytes)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("%d trailing bytes after type", len(rest))
	}
	return Decode(t, body)
}

func take(b []byte, n int) ([]byte, []byte, error) {
	if n < 0 || len(b) < n {
		return nil, nil, fmt.Errorf("need %d bytes, have %d", n, len(b))
	}
	return b[:n], b[n:], nil
}

func takeU32(b []byte) (uint32, []byte, error) {
	head, rest, err := take(b, 4)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint32(head), rest, nil
}

func decodeValue(t Type, b []byte) (Value, []byte, error) {
	switch t.Tag {
	case TagBool:
		head, rest, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		if head[0] > 1 {
			return Value{}, nil, fmt.Errorf("invalid bool byte %d", head[0])
		}
		return Bool(head[0] == 1), rest, nil

	case TagI32:
		head, rest, err := take(b, 4)
		if err != nil {
			return Value{}, nil, err
		}
		return I32(int32(binary.LittleEndian.Uint32(head))), rest, nil

	case TagI64:
		head, rest, err := take(b, 8)
		if err != nil {
			return Value{}, nil, err
		}
		return I64(int64(binary.LittleEndian.Uint64(head))), rest, nil

	case TagU8:
		head, rest, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		return U8(head[0]), rest, nil

	case TagU32:
		n, rest, err := takeU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		return U32(n), rest, nil

	case TagU64:
		head, rest, err := take(b, 8)
		if err != nil {
			return Value{}, nil, err
		}
		return U64(binary.LittleEndian.Uint64(head)), rest, nil

	case TagU128, TagU256, TagU512:
		size, rest, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		if int(size[0]) > maxBytes[t.Tag] {
			return Value{}, nil, fmt.Errorf("%s length %d exceeds %d", t, size[0], maxBytes[t.Tag])
		}
		le, rest, err := take(rest, int(size[0]))
		if err != nil {
			return Value{}, nil, err
		}
		be := make([]byte, len(le))
		for i := range le {
			be[len(le)-1-i] = le[i]
		}
		return Value{Type: t, Int: new(big.Int).SetBytes(be)}, rest, nil

	case TagUnit:
		return Unit(), b, nil

	case TagString:
		n, rest, err := takeU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		s, rest, err := take(rest, int(n))
		if err != nil {
			return Value{}, nil, err
		}
		if !utf8.Valid(s) {
			return Value{}, nil, fmt.Errorf("string is not valid utf-8")
		}
		return String(string(s)), rest, nil

	case TagKey:
		tag, rest, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		variant := KeyVariant(tag[0])
		size := 32
		switch variant {
		case KeyVariantAccount, KeyVariantHash:
		case KeyVariantURef:
			size = 33
		default:
			return Value{}, nil, fmt.Errorf("unsupported key variant %d", variant)
		}
		raw, rest, err := take(rest, size)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Type: TypeKey, Variant: variant, Raw: append([]byte(nil), raw...)}, rest, nil

	case TagURef:
		raw, rest, err := take(b, 33)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Type: TypeURef, Raw: append([]byte(nil), raw...)}, rest, nil

	case TagPublicKey:
		tag, _, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		size := 1
		switch tag[0] {
		case 0:
		case 1:
			size += 32
		case 2:
			size += 33
		default:
			return Value{}, nil, fmt.Errorf("unsupported public key tag %d", tag[0])
		}
		raw, rest, err := take(b, size)
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Type: TypePublicKey, Raw: append([]byte(nil), raw...)}, rest, nil

	case TagByteArray:
		raw, rest, err := take(b, int(t.Size))
		if err != nil {
			return Value{}, nil, err
		}
		return Value{Type: t, Raw: append([]byte(nil), raw...)}, rest, nil

	case TagOption:
		flag, rest, err := take(b, 1)
		if err != nil {
			return Value{}, nil, err
		}
		switch flag[0] {
		case 0:
			return None(*t.Inner), rest, nil
		case 1:
			inner, rest, err := decodeValue(*t.Inner, rest)
			if err != nil {
				return Value{}, nil, err
			}
			return Value{Type: t, Items: []Value{inner}}, rest, nil
		default:
			return Value{}, nil, fmt.Errorf("invalid option flag %d", flag[0])
		}

	case TagList:
		n, rest, err := takeU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		items := make([]Value, 0, min(int(n), len(rest)))
		for i := uint32(0); i < n; i++ {
			var item Value
			if item, rest, err = decodeValue(*t.Inner, rest); err != nil {
				return Value{}, nil, fmt.Errorf("list item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Value{Type: t, Items: items}, rest, nil

	case TagMap:
		n, rest, err := takeU32(b)
		if err != nil {
			return Value{}, nil, err
		}
		entries := make([]MapEntry, 0, min(int(n), len(rest)))
		for i := uint32(0); i < n; i++ {
			var e MapEntry
			if e.Key, rest, err = decodeValue(*t.Key, rest); err != nil {
				return Value{}, nil, fmt.Errorf("map key %d: %w", i, err)
			}
			if e.Value, rest, err = decodeValue(*t.Value, rest); err != nil {
				return Value{}, nil, fmt.Errorf("map value %d: %w", i, err)
			}
			entries = append(entries, e)
		}
		return Value{Type: t, Entries: entries}, rest, nil

	default:
		return Value{}, nil, fmt.Errorf("decoding %s is not supported", t)
	}
}
