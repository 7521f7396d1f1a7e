package clvalue

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// NamedArg is one runtime argument
type NamedArg struct {
	Name  string
	Value Value
}

// Args is an ordered list of runtime arguments
type Args []NamedArg

// NewArgs starts an empty argument list
func NewArgs() Args {
	return Args{}
}

// Add appends an argument and returns the list for chaining
func (a Args) Add(name string, v Value) Args {
	return append(a, NamedArg{Name: name, Value: v})
}

// Get returns the named argument
func (a Args) Get(name string) (Value, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return Value{}, false
}

// Require fails with an EncodingError for every absent name
func (a Args) Require(names ...string) error {
	for _, name := range names {
		if _, ok := a.Get(name); !ok {
			return &EncodingError{Arg: name, Reason: "required argument is missing"}
		}
	}
	return nil
}

// ToBytes serializes the list: u32 count, then name and CLValue per argument
func (a Args) ToBytes() ([]byte, error) {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(a)))
	for _, arg := range a {
		b, err := ToBytes(arg.Value)
		if err != nil {
			return nil, withArg(err, arg.Name)
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(arg.Name)))
		out = append(out, arg.Name...)
		out = append(out, b...)
	}
	return out, nil
}

func withArg(err error, name string) error {
	var e *EncodingError
	if errors.As(err, &e) && e.Arg == "" {
		return &EncodingError{Arg: name, Reason: e.Reason}
	}
	return err
}

// JSONValue is the node's JSON form of a CLValue
type JSONValue struct {
	CLType Type        `json:"cl_type"`
	Bytes  string      `json:"bytes"`
	Parsed interface{} `json:"parsed"`
}

// ToJSONValue encodes v into its JSON form
func ToJSONValue(v Value) (JSONValue, error) {
	b, err := Encode(v)
	if err != nil {
		return JSONValue{}, err
	}
	return JSONValue{CLType: v.Type, Bytes: hex.EncodeToString(b), Parsed: v.Parsed()}, nil
}

// Value decodes the JSON form from its bytes; parsed is informational only
func (j JSONValue) Value() (Value, error) {
	b, err := hex.DecodeString(j.Bytes)
	if err != nil {
		return Value{}, fmt.Errorf("invalid cl value bytes: %w", err)
	}
	return Decode(j.CLType, b)
}

// MarshalJSON emits [[name, {cl_type, bytes, parsed}], ...]
func (a Args) MarshalJSON() ([]byte, error) {
	out := make([][2]interface{}, 0, len(a))
	for _, arg := range a {
		jv, err := ToJSONValue(arg.Value)
		if err != nil {
			return nil, withArg(err, arg.Name)
		}
		out = append(out, [2]interface{}{arg.Name, jv})
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses [[name, {cl_type, bytes, parsed}], ...]
func (a *Args) UnmarshalJSON(data []byte) error {
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid args: %w", err)
	}

	args := make(Args, 0, len(raw))
	for i, pair := range raw {
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return fmt.Errorf("invalid arg %d name: %w", i, err)
		}
		var jv JSONValue
		if err := json.Unmarshal(pair[1], &jv); err != nil {
			return fmt.Errorf("invalid arg %q: %w", name, err)
		}
		v, err := jv.Value()
		if err != nil {
			return fmt.Errorf("invalid arg %q: %w", name, err)
		}
		args = append(args, NamedArg{Name: name, Value: v})
	}
	*a = args
	return nil
}
