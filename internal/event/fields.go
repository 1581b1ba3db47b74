package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Fields is a JSON object that remembers key insertion order. Values are kept
// as raw JSON so caller-supplied documents round-trip untouched.
type Fields struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewFields returns an empty field set.
func NewFields() *Fields {
	return &Fields{values: make(map[string]json.RawMessage)}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (f *Fields) Set(key string, value json.RawMessage) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// SetValue marshals v and stores it under key.
func (f *Fields) SetValue(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	f.Set(key, raw)
	return nil
}

// Get returns the raw JSON stored under key.
func (f *Fields) Get(key string) (json.RawMessage, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Delete removes key if present.
func (f *Fields) Delete(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	f.keys = slices.DeleteFunc(f.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	return slices.Clone(f.keys)
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Merge copies every field of other into f, in other's order.
func (f *Fields) Merge(other *Fields) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		f.Set(k, other.values[k])
	}
}

// MarshalJSON writes the fields as an object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := f.writeMembers(&buf, false); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Fields) writeMembers(buf *bytes.Buffer, leadingComma bool) error {
	for i, k := range f.keys {
		if i > 0 || leadingComma {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.values[k])
	}
	return nil
}

// UnmarshalJSON decodes a JSON object, preserving member order. Duplicate
// keys keep their first position and their last value.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	parsed, err := decodeObject(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON object")
	}
	*f = *parsed
	return nil
}

func decodeObject(dec *json.Decoder) (*Fields, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, found %v", tok)
	}

	fields := NewFields()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, found %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}
