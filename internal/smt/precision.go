package smt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Precision is one n-gram precision entry, e.g. {"1-gram", 0.75}.
type Precision struct {
	Label string
	Value float64
}

// Precisions is an ordered label→precision mapping. It decodes from a JSON
// object and keeps the keys in the order the service sent them.
type Precisions []Precision

// Get returns the precision for label.
func (p Precisions) Get(label string) (float64, bool) {
	for _, e := range p {
		if e.Label == label {
			return e.Value, true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (p *Precisions) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding precision details: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decoding precision details: expected object, got %v", tok)
	}

	out := Precisions{}
	seen := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding precision details: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoding precision details: unexpected key %v", keyTok)
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding precision %q: %w", key, err)
		}
		// A repeated key keeps its first position and takes the last value.
		if i, ok := seen[key]; ok {
			out[i].Value = value
			continue
		}
		seen[key] = len(out)
		out = append(out, Precision{Label: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding precision details: %w", err)
	}

	*p = out
	return nil
}

// MarshalJSON encodes the mapping as a JSON object in order.
func (p Precisions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
