package clvalue

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Tag is the one-byte CL type discriminator
type Tag byte

const (
	TagBool      Tag = 0
	TagI32       Tag = 1
	TagI64       Tag = 2
	TagU8        Tag = 3
	TagU32       Tag = 4
	TagU64       Tag = 5
	TagU128      Tag = 6
	TagU256      Tag = 7
	TagU512      Tag = 8
	TagUnit      Tag = 9
	TagString    Tag = 10
	TagKey       Tag = 11
	TagURef      Tag = 12
	TagOption    Tag = 13
	TagList      Tag = 14
	TagByteArray Tag = 15
	TagResult    Tag = 16
	TagMap       Tag = 17
	TagTuple1    Tag = 18
	TagTuple2    Tag = 19
	TagTuple3    Tag = 20
	TagAny       Tag = 21
	TagPublicKey Tag = 22
)

var simpleNames = map[Tag]string{
	TagBool:      "Bool",
	TagI32:       "I32",
	TagI64:       "I64",
	TagU8:        "U8",
	TagU32:       "U32",
	TagU64:       "U64",
	TagU128:      "U128",
	TagU256:      "U256",
	TagU512:      "U512",
	TagUnit:      "Unit",
	TagString:    "String",
	TagKey:       "Key",
	TagURef:      "URef",
	TagAny:       "Any",
	TagPublicKey: "PublicKey",
}

// Type is a CL type. Inner is set for Option and List, Key/Value for Map, Size for ByteArray.
type Type struct {
	Tag   Tag
	Inner *Type
	Key   *Type
	Value *Type
	Size  uint32
}

var (
	TypeBool      = Type{Tag: TagBool}
	TypeI32       = Type{Tag: TagI32}
	TypeI64       = Type{Tag: TagI64}
	TypeU8        = Type{Tag: TagU8}
	TypeU32       = Type{Tag: TagU32}
	TypeU64       = Type{Tag: TagU64}
	TypeU128      = Type{Tag: TagU128}
	TypeU256      = Type{Tag: TagU256}
	TypeU512      = Type{Tag: TagU512}
	TypeUnit      = Type{Tag: TagUnit}
	TypeString    = Type{Tag: TagString}
	TypeKey       = Type{Tag: TagKey}
	TypeURef      = Type{Tag: TagURef}
	TypeAny       = Type{Tag: TagAny}
	TypePublicKey = Type{Tag: TagPublicKey}
)

// ListOf returns List<inner>
func ListOf(inner Type) Type {
	return Type{Tag: TagList, Inner: &inner}
}

// OptionOf returns Option<inner>
func OptionOf(inner Type) Type {
	return Type{Tag: TagOption, Inner: &inner}
}

// MapOf returns Map<key, value>
func MapOf(key, value Type) Type {
	return Type{Tag: TagMap, Key: &key, Value: &value}
}

// ByteArrayOf returns ByteArray(size)
func ByteArrayOf(size uint32) Type {
	return Type{Tag: TagByteArray, Size: size}
}

// Equal reports structural type equality
func (t Type) Equal(o Type) bool {
	if t.Tag != o.Tag {
		return false
	}
	switch t.Tag {
	case TagOption, TagList:
		return t.Inner != nil && o.Inner != nil && t.Inner.Equal(*o.Inner)
	case TagMap:
		return t.Key != nil && o.Key != nil && t.Value != nil && o.Value != nil &&
			t.Key.Equal(*o.Key) && t.Value.Equal(*o.Value)
	case TagByteArray:
		return t.Size == o.Size
	default:
		return true
	}
}

// Bytes returns the binary type descriptor appended after a serialized value
func (t Type) Bytes() []byte {
	out := []byte{byte(t.Tag)}
	switch t.Tag {
	case TagOption, TagList:
		out = append(out, t.Inner.Bytes()...)
	case TagMap:
		out = append(out, t.Key.Bytes()...)
		out = append(out, t.Value.Bytes()...)
	case TagByteArray:
		out = binary.LittleEndian.AppendUint32(out, t.Size)
	}
	return out
}

func (t Type) String() string {
	switch t.Tag {
	case TagOption:
		return fmt.Sprintf("Option<%s>", t.Inner)
	case TagList:
		return fmt.Sprintf("List<%s>", t.Inner)
	case TagMap:
		return fmt.Sprintf("Map<%s,%s>", t.Key, t.Value)
	case TagByteArray:
		return fmt.Sprintf("ByteArray(%d)", t.Size)
	}
	if name, ok := simpleNames[t.Tag]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", t.Tag)
}

// decodeType reads a binary type descriptor and returns the remainder
func decodeType(b []byte) (Type, []byte, error) {
	if len(b) == 0 {
		return Type{}, nil, fmt.Errorf("empty type descriptor")
	}
	tag, rest := Tag(b[0]), b[1:]
	switch tag {
	case TagOption, TagList:
		inner, rest, err := decodeType(rest)
		if err != nil {
			return Type{}, nil, err
		}
		return Type{Tag: tag, Inner: &inner}, rest, nil
	case TagMap:
		key, rest, err := decodeType(rest)
		if err != nil {
			return Type{}, nil, err
		}
		value, rest, err := decodeType(rest)
		if err != nil {
			return Type{}, nil, err
		}
		return MapOf(key, value), rest, nil
	case TagByteArray:
		if len(rest) < 4 {
			return Type{}, nil, fmt.Errorf("truncated byte array size")
		}
		return ByteArrayOf(binary.LittleEndian.Uint32(rest)), rest[4:], nil
	}
	if _, ok := simpleNames[tag]; !ok {
		return Type{}, nil, fmt.Errorf("unsupported type tag %d", tag)
	}
	return Type{Tag: tag}, rest, nil
}

// MarshalJSON emits the node's JSON type form, e.g. "U512" or {"List":"U256"}
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.Tag {
	case TagOption:
		return json.Marshal(map[string]Type{"Option": *t.Inner})
	case TagList:
		return json.Marshal(map[string]Type{"List": *t.Inner})
	case TagMap:
		return json.Marshal(map[string]map[string]Type{"Map": {"key": *t.Key, "value": *t.Value}})
	case TagByteArray:
		return json.Marshal(map[string]uint32{"ByteArray": t.Size})
	}
	name, ok := simpleNames[t.Tag]
	if !ok {
		return nil, fmt.Errorf("unsupported type tag %d", t.Tag)
	}
	return json.Marshal(name)
}

// UnmarshalJSON parses the node's JSON type form
func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for tag, n := range simpleNames {
			if n == name {
				*t = Type{Tag: tag}
				return nil
			}
		}
		return fmt.Errorf("unknown cl_type %q", name)
	}

	var complex map[string]json.RawMessage
	if err := json.Unmarshal(data, &complex); err != nil {
		return fmt.Errorf("invalid cl_type: %w", err)
	}
	if len(complex) != 1 {
		return fmt.Errorf("invalid cl_type: expected one variant, got %d", len(complex))
	}

	for variant, raw := range complex {
		switch variant {
		case "Option", "List":
			var inner Type
			if err := json.Unmarshal(raw, &inner); err != nil {
				return err
			}
			if variant == "Option" {
				*t = OptionOf(inner)
			} else {
				*t = ListOf(inner)
			}
		case "Map":
			var kv struct {
				Key   Type `json:"key"`
				Value Type `json:"value"`
			}
			if err := json.Unmarshal(raw, &kv); err != nil {
				return err
			}
			*t = MapOf(kv.Key, kv.Value)
		case "ByteArray":
			var size uint32
			if err := json.Unmarshal(raw, &size); err != nil {
				return err
			}
			*t = ByteArrayOf(size)
		default:
			return fmt.Errorf("unsupported cl_type variant %q", variant)
		}
	}
	return nil
}
