package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"orderetl/internal/shared/textenc"
)

// ColumnMapping renames one source column to a canonical field
type ColumnMapping struct {
	Source string
	Target string
}

// HeaderMapping is the ordered column mapping of one source
type HeaderMapping []ColumnMapping

// Targets returns the canonical field names in mapping order
func (h HeaderMapping) Targets() []string {
	out := make([]string, len(h))
	for i, m := range h {
		out[i] = m.Target
	}
	return out
}

// Target returns the canonical name for a source column
func (h HeaderMapping) Target(source string) (string, bool) {
	for _, m := range h {
		if m.Source == source {
			return m.Target, true
		}
	}
	return "", false
}

// set replaces an existing mapping in place or appends a new one
func (h *HeaderMapping) set(source, target string) {
	for i := range *h {
		if (*h)[i].Source == source {
			(*h)[i].Target = target
			return
		}
	}
	*h = append(*h, ColumnMapping{Source: source, Target: target})
}

// UnmarshalJSON decodes an object keeping key order
func (h *HeaderMapping) UnmarshalJSON(data []byte) error {
	var out HeaderMapping
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var target string
		if err := json.Unmarshal(raw, &target); err != nil {
			return fmt.Errorf("column %q: target must be a string", key)
		}
		out.set(key, target)
		return nil
	})
	if err != nil {
		return err
	}
	*h = out
	return nil
}

// MarshalJSON encodes the mapping as an object in mapping order
func (h HeaderMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(&buf, m.Source, m.Target); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HeadersConfig is the parsed headers.json: source name -> column mapping.
// Source order of the file is kept so that rewrites are stable.
type HeadersConfig struct {
	order    []string
	mappings map[string]HeaderMapping
}

// NewHeadersConfig returns an empty headers configuration
func NewHeadersConfig() *HeadersConfig {
	return &HeadersConfig{mappings: make(map[string]HeaderMapping)}
}

// Sources returns the configured source names in file order
func (c *HeadersConfig) Sources() []string {
	return append([]string(nil), c.order...)
}

// Get returns the mapping of a source
func (c *HeadersConfig) Get(source string) (HeaderMapping, bool) {
	m, ok := c.mappings[source]
	return m, ok
}

// Set stores the mapping of a source
func (c *HeadersConfig) Set(source string, mapping HeaderMapping) {
	if c.mappings == nil {
		c.mappings = make(map[string]HeaderMapping)
	}
	if _, ok := c.mappings[source]; !ok {
		c.order = append(c.order, source)
	}
	c.mappings[source] = mapping
}

// Len returns the number of sources
func (c *HeadersConfig) Len() int {
	return len(c.order)
}

// UnmarshalJSON decodes the top-level object keeping source order
func (c *HeadersConfig) UnmarshalJSON(data []byte) error {
	out := NewHeadersConfig()
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var mapping HeaderMapping
		if err := json.Unmarshal(raw, &mapping); err != nil {
			return fmt.Errorf("source %q: %w", key, err)
		}
		out.Set(key, mapping)
		return nil
	})
	if err != nil {
		return err
	}
	*c = *out
	return nil
}

// MarshalJSON encodes sources in their stored order
func (c *HeadersConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, source := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(&buf, source, c.mappings[source]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// LoadHeaders reads a headers file. A leading BOM is tolerated.
func LoadHeaders(path string) (*HeadersConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = textenc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg := NewHeadersConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// EncodeHeaders encodes a headers file with 4-space indentation behind a
// UTF-8 BOM. Non-ASCII column names are written as \u escapes.
func EncodeHeaders(cfg *HeadersConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, err
	}
	out := textenc.BOM()
	out = append(out, textenc.EscapeNonASCII(data)...)
	return append(out, '\n'), nil
}

// MergeOverrides returns a copy of current where every source column that also
// appears in overrides for the same source takes the override's target.
// Sources and columns that exist only in overrides are ignored.
func MergeOverrides(current, overrides *HeadersConfig) (*HeadersConfig, int) {
	merged := NewHeadersConfig()
	changed := 0
	for _, source := range current.Sources() {
		mapping, _ := current.Get(source)
		out := make(HeaderMapping, len(mapping))
		copy(out, mapping)

		if override, ok := overrides.Get(source); ok {
			for i := range out {
				if target, ok := override.Target(out[i].Source); ok {
					if out[i].Target != target {
						changed++
					}
					out[i].Target = target
				}
			}
		}
		merged.Set(source, out)
	}
	return merged, changed
}

func decodeOrderedObject(data []byte, each func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := each(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func writeKeyValue(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
