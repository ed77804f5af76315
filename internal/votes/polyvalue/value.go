// Package polyvalue decodes upstream JSON leaves whose type drifts between
// files and eras (string, number, object, list) into a tagged union.
//
// Decoding tries alternatives in a fixed order and the first match wins:
//
//	absent → null → "none" → unsigned integer → text → mapping → sequence
//
// The domain profile (DecodeSpecific) inserts caller-supplied named shapes
// between text and mapping.
package polyvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rollcall/pkg/platform/sentinel"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindNone
	KindInteger
	KindText
	KindMapping
	KindSequence
	// KindShaped is only produced by the domain profile.
	KindShaped
)

// NoneSentinel is the upstream literal decoded as KindNone.
const NoneSentinel = "none"

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindNone:
		return "none"
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindShaped:
		return "shaped"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one decoded JSON leaf. The zero Value is absent.
type Value struct {
	kind     Kind
	integer  uint32
	text     string
	mapping  map[string]Value
	sequence []Value
}

func Null() Value { return Value{kind: KindNull} }
func None() Value { return Value{kind: KindNone} }
func Integer(n uint32) Value { return Value{kind: KindInteger, integer: n} }
func Text(s string) Value { return Value{kind: KindText, text: s} }
func Mapping(m map[string]Value) Value { return Value{kind: KindMapping, mapping: m} }
func Sequence(items ...Value) Value { return Value{kind: KindSequence, sequence: items} }

func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the field was absent from the document.
func (v Value) IsZero() bool { return v.kind == KindAbsent }

// Text returns the string payload when v holds text.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// TextOr returns the text payload or fallback for every other kind.
func (v Value) TextOr(fallback string) string {
	if s, ok := v.Text(); ok {
		return s
	}
	return fallback
}

func (v Value) Integer() (uint32, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.integer, true
}

func (v Value) Mapping() (map[string]Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.mapping, true
}

func (v Value) Sequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.sequence, true
}

// Uint32 interprets v as a count. Integers pass through and text is parsed
// after trimming. Missing reports whether v carried no payload at all
// (absent, null or none), which callers treat differently from garbage.
func (v Value) Uint32() (n uint32, missing bool, err error) {
	switch v.kind {
	case KindAbsent, KindNull, KindNone:
		return 0, true, nil
	case KindInteger:
		return v.integer, false, nil
	case KindText:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v.text), 10, 32)
		if err != nil {
			return 0, false, fmt.Errorf("parse count %q: %w", v.text, err)
		}
		return uint32(parsed), false, nil
	default:
		return 0, false, fmt.Errorf("count encoded as %s", v.kind)
	}
}

// String renders v the way upstream dumps are usually eyeballed. Mapping keys
// are sorted so the rendering is stable.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent, KindNull:
		return "null"
	case KindNone:
		return NoneSentinel
	case KindInteger:
		return strconv.FormatUint(uint64(v.integer), 10)
	case KindText:
		return v.text
	case KindMapping:
		keys := make([]string, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteByte('{')
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s, ", k, v.mapping[k])
		}
		b.WriteByte('}')
		return b.String()
	case KindSequence:
		var b strings.Builder
		b.WriteByte('[')
		for _, item := range v.sequence {
			fmt.Fprintf(&b, "%s, ", item)
		}
		b.WriteByte(']')
		return b.String()
	default:
		return ""
	}
}

// trial attempts one variant. ok=false means "not this variant, try the
// next one"; a non-nil error aborts decoding.
type trial func(raw []byte) (v Value, ok bool, err error)

// genericTrials is the load-bearing precedence order of the generic profile.
// Assigned in init: the container trials recurse through Decode.
var genericTrials []trial

func init() {
	genericTrials = []trial{
		tryAbsent,
		tryNull,
		tryNone,
		tryInteger,
		tryText,
		tryMapping,
		trySequence,
	}
}

// Decode decodes one JSON leaf with the generic profile.
func Decode(raw []byte) (Value, error) {
	return run(genericTrials, raw)
}

func run(trials []trial, raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	for _, t := range trials {
		v, ok, err := t(raw)
		if err != nil {
			return Value{}, err
		}
		if ok {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %.40s", sentinel.ErrUndecodable, raw)
}

func tryAbsent(raw []byte) (Value, bool, error) {
	return Value{}, len(raw) == 0, nil
}

func tryNull(raw []byte) (Value, bool, error) {
	return Null(), bytes.Equal(raw, []byte("null")), nil
}

func tryNone(raw []byte) (Value, bool, error) {
	var s string
	if raw[0] != '"' || json.Unmarshal(raw, &s) != nil || s != NoneSentinel {
		return Value{}, false, nil
	}
	return None(), true, nil
}

func tryInteger(raw []byte) (Value, bool, error) {
	var n uint32
	if json.Unmarshal(raw, &n) != nil {
		return Value{}, false, nil
	}
	return Integer(n), true, nil
}

func tryText(raw []byte) (Value, bool, error) {
	var s string
	if raw[0] != '"' || json.Unmarshal(raw, &s) != nil {
		return Value{}, false, nil
	}
	return Text(s), true, nil
}

func tryMapping(raw []byte) (Value, bool, error) {
	if raw[0] != '{' {
		return Value{}, false, nil
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return Value{}, false, nil
	}
	m := make(map[string]Value, len(members))
	for k, member := range members {
		v, err := Decode(member)
		if err != nil {
			return Value{}, false, fmt.Errorf("key %q: %w", k, err)
		}
		m[k] = v
	}
	return Mapping(m), true, nil
}

func trySequence(raw []byte) (Value, bool, error) {
	if raw[0] != '[' {
		return Value{}, false, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Value{}, false, nil
	}
	seq := make([]Value, 0, len(items))
	for i, item := range items {
		v, err := Decode(item)
		if err != nil {
			return Value{}, false, fmt.Errorf("index %d: %w", i, err)
		}
		seq = append(seq, v)
	}
	return Sequence(seq...), true, nil
}

// UnmarshalJSON decodes with the generic profile. encoding/json never calls it
// for missing keys, so those stay absent.
func (v *Value) UnmarshalJSON(raw []byte) error {
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalJSON writes v back in the shape it was read from. Absent encodes as
// null; tag fields with omitzero to drop them instead.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAbsent, KindNull:
		return []byte("null"), nil
	case KindNone:
		return json.Marshal(NoneSentinel)
	case KindInteger:
		return strconv.AppendUint(nil, uint64(v.integer), 10), nil
	case KindText:
		return json.Marshal(v.text)
	case KindMapping:
		return json.Marshal(v.mapping)
	case KindSequence:
		if v.sequence == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.sequence)
	default:
		return nil, fmt.Errorf("marshal polyvalue: unexpected kind %s", v.kind)
	}
}
