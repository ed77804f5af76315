package polyvalue

import (
	"bytes"
	"encoding/json"
)

// Lenient is a Value field that never fails the enclosing document. A leaf
// the generic profile rejects is kept verbatim, and Uint32 reports the
// decoding error so callers can degrade it. Missing keys stay absent.
type Lenient struct {
	value Value
	raw   json.RawMessage
	err   error
}

func (l *Lenient) UnmarshalJSON(raw []byte) error {
	v, err := Decode(raw)
	if err != nil {
		*l = Lenient{raw: bytes.Clone(raw), err: err}
		return nil
	}
	*l = Lenient{value: v}
	return nil
}

// MarshalJSON writes a rejected leaf back unchanged.
func (l Lenient) MarshalJSON() ([]byte, error) {
	if l.err != nil {
		return l.raw, nil
	}
	return l.value.MarshalJSON()
}

// Value returns the decoded value; a rejected leaf is absent.
func (l Lenient) Value() Value { return l.value }

// Err is the decoding error of a rejected leaf.
func (l Lenient) Err() error { return l.err }

func (l Lenient) IsZero() bool { return l.err == nil && l.value.IsZero() }

func (l Lenient) Uint32() (n uint32, missing bool, err error) {
	if l.err != nil {
		return 0, false, l.err
	}
	return l.value.Uint32()
}

func (l Lenient) String() string {
	if l.err != nil {
		return string(bytes.TrimSpace(l.raw))
	}
	return l.value.String()
}
