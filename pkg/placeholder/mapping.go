package placeholder

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry binds a token name to a source reference.
// Raw keeps the source as configured; Source is its parsed form and is invalid
// when Raw is malformed, in which case the entry resolves to "not found".
type Entry struct {
	Name   string
	Raw    string
	Source Source
}

// Mapping is an ordered list of placeholder entries.
// Substitution visits entries in this order.
type Mapping []Entry

// NewEntry builds an entry, parsing raw leniently.
func NewEntry(name, raw string) Entry {
	source, _ := ParseSource(raw)
	return Entry{Name: name, Raw: raw, Source: source}
}

// Add appends an entry, or replaces the source of an existing entry with the same name
// while keeping its position.
func (m Mapping) Add(name, raw string) Mapping {
	for i := range m {
		if m[i].Name == name {
			m[i] = NewEntry(name, raw)
			return m
		}
	}
	return append(m, NewEntry(name, raw))
}

// Lookup returns the entry registered for name.
func (m Mapping) Lookup(name string) (Entry, bool) {
	for _, e := range m {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns token names in order.
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for _, e := range m {
		names = append(names, e.Name)
	}
	return names
}

// Validate returns an error for the first entry whose source does not parse.
func (m Mapping) Validate() error {
	for _, e := range m {
		if _, err := ParseSource(e.Raw); err != nil {
			return fmt.Errorf("%w: entry %q: %w", ErrInvalidMapping, e.Name, err)
		}
	}
	return nil
}

// ParseMapping parses "name=source:key" pairs separated by commas.
func ParseMapping(s string) (Mapping, error) {
	var m Mapping
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMapping, pair)
		}

		m = m.Add(name, strings.TrimSpace(raw))
	}
	return m, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for env configuration.
func (m *Mapping) UnmarshalText(text []byte) error {
	parsed, err := ParseMapping(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mapping) MarshalText() ([]byte, error) {
	pairs := make([]string, 0, len(m))
	for _, e := range m {
		pairs = append(pairs, e.Name+"="+e.Raw)
	}
	return []byte(strings.Join(pairs, ",")), nil
}

// UnmarshalYAML decodes a YAML mapping node, keeping document order.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected mapping at line %d", ErrInvalidMapping, node.Line)
	}

	var out Mapping
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: non-scalar entry at line %d", ErrInvalidMapping, k.Line)
		}
		out = out.Add(k.Value, v.Value)
	}

	*m = out
	return nil
}
