package polyvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape is a named object layout recognised by the domain profile. Match
// returns ok=false when raw does not have the layout.
type Shape struct {
	Name  string
	Match func(raw []byte) (decoded any, ok bool)
}

// ObjectShape matches a JSON object carrying at least one of keys (any object
// when keys is empty) that also decodes cleanly into T.
func ObjectShape[T any](name string, keys ...string) Shape {
	return Shape{
		Name: name,
		Match: func(raw []byte) (any, bool) {
			return matchObject[T](raw, keys)
		},
	}
}

// ListShape matches a JSON array whose every element matches
// ObjectShape[T](name, keys...). The empty array matches.
func ListShape[T any](name string, keys ...string) Shape {
	return Shape{
		Name: name,
		Match: func(raw []byte) (any, bool) {
			if len(raw) == 0 || raw[0] != '[' {
				return nil, false
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, false
			}
			out := make([]T, 0, len(items))
			for _, item := range items {
				v, ok := matchObject[T](bytes.TrimSpace(item), keys)
				if !ok {
					return nil, false
				}
				out = append(out, v)
			}
			return out, true
		},
	}
}

func matchObject[T any](raw []byte, keys []string) (T, bool) {
	var zero T
	if len(raw) == 0 || raw[0] != '{' {
		return zero, false
	}
	if len(keys) > 0 {
		var members map[string]json.RawMessage
		if err := json.Unmarshal(raw, &members); err != nil {
			return zero, false
		}
		found := false
		for _, k := range keys {
			if _, ok := members[k]; ok {
				found = true
				break
			}
		}
		if !found {
			return zero, false
		}
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, false
	}
	return out, true
}

// Specific is a Value decoded with the domain profile: either one of the named
// shapes matched, or it holds the generic decoding.
type Specific struct {
	generic Value
	shape   string
	decoded any
}

// DecodeSpecific decodes raw trying, in order: absent, null, none, unsigned
// integer, text, each of shapes in the order given, mapping, sequence.
func DecodeSpecific(raw []byte, shapes ...Shape) (Specific, error) {
	trimmed := bytes.TrimSpace(raw)
	if v, ok, err := runUntil(trimmed, tryAbsent, tryNull, tryNone, tryInteger, tryText); err != nil || ok {
		return Specific{generic: v}, err
	}
	for _, s := range shapes {
		if decoded, ok := s.Match(trimmed); ok {
			return Specific{shape: s.Name, decoded: decoded}, nil
		}
	}
	v, err := run([]trial{tryMapping, trySequence}, trimmed)
	if err != nil {
		return Specific{}, err
	}
	return Specific{generic: v}, nil
}

func runUntil(raw []byte, trials ...trial) (Value, bool, error) {
	for _, t := range trials {
		v, ok, err := t(raw)
		if err != nil || ok {
			return v, ok, err
		}
	}
	return Value{}, false, nil
}

func (s Specific) Kind() Kind {
	if s.shape != "" {
		return KindShaped
	}
	return s.generic.Kind()
}

// Shape returns the name of the matched shape, or "" for generic results.
func (s Specific) Shape() string { return s.shape }

// Generic returns the generic decoding. It is absent when a shape matched.
func (s Specific) Generic() Value { return s.generic }

func (s Specific) IsZero() bool { return s.shape == "" && s.generic.IsZero() }

// As extracts the decoded shape payload as T.
func As[T any](s Specific) (T, bool) {
	v, ok := s.decoded.(T)
	return v, ok
}

func (s Specific) String() string {
	if s.shape != "" {
		return fmt.Sprintf("%s%+v", s.shape, s.decoded)
	}
	return s.generic.String()
}

func (s Specific) MarshalJSON() ([]byte, error) {
	if s.shape != "" {
		return json.Marshal(s.decoded)
	}
	return s.generic.MarshalJSON()
}
