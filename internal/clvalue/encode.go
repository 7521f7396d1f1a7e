package clvalue

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// maxBytes is the widest little-endian encoding allowed per unsigned big integer type
var maxBytes = map[Tag]int{
	TagU128: 16,
	TagU256: 32,
	TagU512: 64,
}

// Encode serializes v to its binary form (without the trailing type descriptor)
func Encode(v Value) ([]byte, error) {
	return appendValue(nil, v)
}

func appendValue(out []byte, v Value) ([]byte, error) {
	switch v.Type.Tag {
	case TagBool:
		if v.Bool {
			return append(out, 1), nil
		}
		return append(out, 0), nil

	case TagI32, TagI64:
		if v.Int == nil || !v.Int.IsInt64() {
			return nil, &EncodingError{Reason: fmt.Sprintf("%s out of range", v.Type)}
		}
		n := v.Int.Int64()
		if v.Type.Tag == TagI32 {
			if n < -1<<31 || n > 1<<31-1 {
				return nil, &EncodingError{Reason: fmt.Sprintf("%d overflows I32", n)}
			}
			return binary.LittleEndian.AppendUint32(out, uint32(int32(n))), nil
		}
		return binary.LittleEndian.AppendUint64(out, uint64(n)), nil

	case TagU8, TagU32, TagU64:
		if v.Int == nil || v.Int.Sign() < 0 || !v.Int.IsUint64() {
			return nil, &EncodingError{Reason: fmt.Sprintf("%s out of range", v.Type)}
		}
		n := v.Int.Uint64()
		switch v.Type.Tag {
		case TagU8:
			if n > 0xff {
				return nil, &EncodingError{Reason: fmt.Sprintf("%d overflows U8", n)}
			}
			return append(out, byte(n)), nil
		case TagU32:
			if n > 0xffffffff {
				return nil, &EncodingError{Reason: fmt.Sprintf("%d overflows U32", n)}
			}
			return binary.LittleEndian.AppendUint32(out, uint32(n)), nil
		default:
			return binary.LittleEndian.AppendUint64(out, n), nil
		}

	case TagU128, TagU256, TagU512:
		return appendBigUint(out, v)

	case TagUnit:
		return out, nil

	case TagString:
		if !utf8.ValidString(v.Str) {
			return nil, &EncodingError{Reason: "string is not valid utf-8"}
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(v.Str)))
		return append(out, v.Str...), nil

	case TagKey:
		size := 32
		if v.Variant == KeyVariantURef {
			size = 33
		}
		if v.Variant > KeyVariantURef {
			return nil, &EncodingError{Reason: fmt.Sprintf("unsupported key variant %d", v.Variant)}
		}
		if len(v.Raw) != size {
			return nil, &EncodingError{Reason: fmt.Sprintf("key payload must be %d bytes, got %d", size, len(v.Raw))}
		}
		out = append(out, byte(v.Variant))
		return append(out, v.Raw...), nil

	case TagURef:
		if len(v.Raw) != 33 {
			return nil, &EncodingError{Reason: fmt.Sprintf("uref must be 33 bytes, got %d", len(v.Raw))}
		}
		return append(out, v.Raw...), nil

	case TagPublicKey:
		if len(v.Raw) == 0 {
			return nil, &EncodingError{Reason: "empty public key"}
		}
		return append(out, v.Raw...), nil

	case TagByteArray:
		if uint32(len(v.Raw)) != v.Type.Size {
			return nil, &EncodingError{Reason: fmt.Sprintf("byte array length mismatch: want %d, got %d", v.Type.Size, len(v.Raw))}
		}
		return append(out, v.Raw...), nil

	case TagOption:
		if len(v.Items) == 0 {
			return append(out, 0), nil
		}
		if !v.Items[0].Type.Equal(*v.Type.Inner) {
			return nil, &EncodingError{Reason: fmt.Sprintf("option holds %s, declared %s", v.Items[0].Type, v.Type.Inner)}
		}
		return appendValue(append(out, 1), v.Items[0])

	case TagList:
		out = binary.LittleEndian.AppendUint32(out, uint32(len(v.Items)))
		var err error
		for i, item := range v.Items {
			if !item.Type.Equal(*v.Type.Inner) {
				return nil, &EncodingError{Reason: fmt.Sprintf("list item %d is %s, declared %s", i, item.Type, v.Type.Inner)}
			}
			if out, err = appendValue(out, item); err != nil {
				return nil, err
			}
		}
		return out, nil

	case TagMap:
		out = binary.LittleEndian.AppendUint32(out, uint32(len(v.Entries)))
		var err error
		for i, e := range v.Entries {
			if !e.Key.Type.Equal(*v.Type.Key) || !e.Value.Type.Equal(*v.Type.Value) {
				return nil, &EncodingError{Reason: fmt.Sprintf("map entry %d does not match %s", i, v.Type)}
			}
			if out, err = appendValue(out, e.Key); err != nil {
				return nil, err
			}
			if out, err = appendValue(out, e.Value); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		return nil, &EncodingError{Reason: fmt.Sprintf("unsupported type %s", v.Type)}
	}
}

// appendBigUint writes one length byte followed by the minimal little-endian magnitude
func appendBigUint(out []byte, v Value) ([]byte, error) {
	if v.Int == nil {
		return nil, &EncodingError{Reason: fmt.Sprintf("missing %s value", v.Type)}
	}
	if v.Int.Sign() < 0 {
		return nil, &EncodingError{Reason: fmt.Sprintf("negative value for unsigned %s", v.Type)}
	}

	be := v.Int.Bytes()
	if len(be) > maxBytes[v.Type.Tag] {
		return nil, &EncodingError{Reason: fmt.Sprintf("%s overflows %s", v.Int, v.Type)}
	}

	out = append(out, byte(len(be)))
	for i := len(be) - 1; i >= 0; i-- {
		out = append(out, be[i])
	}
	return out, nil
}

// ToBytes serializes a complete CLValue: u32 length, value bytes, type descriptor
func ToBytes(v Value) ([]byte, error) {
	body, err := Encode(v)
	if err != nil {
		return nil, err
	}
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(body)))
	out = append(out, body...)
	return append(out, v.Type.Bytes()...), nil
}
