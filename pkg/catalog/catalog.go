// Package catalog holds the static table of known bodies: which source
// serves each one, its API id, symbol and parent body.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"cosmossdk.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/celestial-lookup/internal/types"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Entry describes one body.
type Entry struct {
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Kind    string   `yaml:"kind" json:"kind"`
	Source  string   `yaml:"source" json:"source"`
	ID      string   `yaml:"id" json:"id"`
	Symbol  string   `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Orbits  string   `yaml:"orbits,omitempty" json:"orbits,omitempty"`
}

// OrbitsText returns the parent-body line shown for moons.
func (e Entry) OrbitsText() string {
	if e.Orbits == "" {
		return ""
	}
	return fmt.Sprintf("%s orbits %s", e.Name, e.Orbits)
}

type file struct {
	Bodies []Entry `yaml:"bodies"`
}

// Catalog is an immutable, case-insensitive index of entries.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a catalog. Names and aliases must be unique ignoring case.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" || e.Source == "" || e.ID == "" {
			return nil, errors.Wrapf(types.ErrInvalidConfig, "catalog entry %q needs name, source and id", e.Name)
		}
		i := len(c.entries)
		for _, key := range append([]string{e.Name}, e.Aliases...) {
			k := normalizeKey(key)
			if _, dup := c.index[k]; dup {
				return nil, errors.Wrapf(types.ErrInvalidConfig, "duplicate catalog name %q", key)
			}
			c.index[k] = i
		}
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Parse reads a catalog from YAML. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.IsOf(err, io.EOF) {
		return nil, errors.Wrapf(types.ErrInvalidConfig, "parse catalog: %v", err)
	}
	return New(f.Bodies)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Find returns the entry named name or one of its aliases.
func (c *Catalog) Find(name string) (Entry, error) {
	i, ok := c.index[normalizeKey(name)]
	if !ok {
		return Entry{}, errors.Wrapf(types.ErrUnknownBody, "%q", name)
	}
	return c.entries[i], nil
}

// Entries returns all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Kinds returns the distinct body kinds, sorted.
func (c *Catalog) Kinds() []string {
	seen := map[string]bool{}
	var kinds []string
	for _, e := range c.entries {
		if !seen[e.Kind] {
			seen[e.Kind] = true
			kinds = append(kinds, e.Kind)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// Sources returns the distinct source names the catalog refers to.
func (c *Catalog) Sources() []string {
	seen := map[string]bool{}
	var names []string
	for _, e := range c.entries {
		if !seen[e.Source] {
			seen[e.Source] = true
			names = append(names, e.Source)
		}
	}
	sort.Strings(names)
	return names
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
