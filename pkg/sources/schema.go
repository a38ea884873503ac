// Package sources adapts the documents of external astronomy APIs into raw
// body records. Each source shape is a declarative Schema.
package sources

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cosmossdk.io/errors"
	"github.com/tidwall/gjson"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
)

// Adapter turns one source's JSON document into a raw record.
type Adapter interface {
	Name() string
	Adapt(doc []byte) raw.Record
}

// FieldSpec locates one raw field inside a source document. Paths use
// gjson syntax, e.g. "mass.massValue", "0.pl_rade" or
// `phys_par.#(name=="GM").value`.
type FieldSpec struct {
	Path string `yaml:"path" mapstructure:"path"`
	// ExponentPath makes the field a mantissa/exponent pair.
	ExponentPath string  `yaml:"exponent_path,omitempty" mapstructure:"exponent_path"`
	Unit         string  `yaml:"unit" mapstructure:"unit"`
	Factor       float64 `yaml:"factor,omitempty" mapstructure:"factor"`
	// ZeroIsUnknown drops numeric zeros, which some sources use for "no data".
	ZeroIsUnknown bool `yaml:"zero_is_unknown,omitempty" mapstructure:"zero_is_unknown"`
}

type compiledField struct {
	field raw.Field
	spec  FieldSpec
}

// Schema is an Adapter driven by field specs.
type Schema struct {
	name   string
	fields []compiledField
}

// NewSchema validates and compiles specs. Field names match raw fields
// case-insensitively since config keys arrive lowercased.
func NewSchema(name string, specs map[string]FieldSpec) (*Schema, error) {
	if name == "" {
		return nil, errors.Wrap(types.ErrInvalidSchema, "schema name cannot be empty")
	}
	if len(specs) == 0 {
		return nil, errors.Wrapf(types.ErrInvalidSchema, "schema %s has no fields", name)
	}

	s := &Schema{name: name}
	for key, spec := range specs {
		f, ok := ParseField(key)
		if !ok {
			return nil, errors.Wrapf(types.ErrInvalidSchema, "schema %s: unknown field %q", name, key)
		}
		u := raw.Unit(spec.Unit)
		_, dim, ok := u.ToSI()
		if !ok || dim != f.Dimension() {
			return nil, errors.Wrapf(types.ErrInvalidSchema, "schema %s: unit %q does not measure %s", name, spec.Unit, f)
		}
		if err := checkPath(spec.Path); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidSchema, "schema %s: %s: %v", name, f, err)
		}
		if spec.ExponentPath != "" {
			if err := checkPath(spec.ExponentPath); err != nil {
				return nil, errors.Wrapf(types.ErrInvalidSchema, "schema %s: %s exponent: %v", name, f, err)
			}
		}
		s.fields = append(s.fields, compiledField{field: f, spec: spec})
	}
	sort.Slice(s.fields, func(i, j int) bool { return s.fields[i].field < s.fields[j].field })
	return s, nil
}

// MustSchema is NewSchema for built-in tables.
func MustSchema(name string, specs map[string]FieldSpec) *Schema {
	s, err := NewSchema(name, specs)
	if err != nil {
		panic(err)
	}
	return s
}

// Name implements Adapter
func (s *Schema) Name() string {
	return s.name
}

// Adapt implements Adapter. Paths that do not resolve leave the field out.
func (s *Schema) Adapt(doc []byte) raw.Record {
	rec := raw.Record{}
	if !gjson.ValidBytes(doc) {
		return rec
	}
	for _, cf := range s.fields {
		res := gjson.GetBytes(doc, cf.spec.Path)
		if !res.Exists() || res.Type == gjson.Null {
			continue
		}
		if cf.spec.ZeroIsUnknown && res.Type == gjson.Number && res.Float() == 0 {
			continue
		}

		u := raw.Unit(cf.spec.Unit)
		var value raw.Value
		if cf.spec.ExponentPath != "" {
			value = raw.Scientific(resultValue(res), resultValue(gjson.GetBytes(doc, cf.spec.ExponentPath)), u)
		} else {
			value = raw.Number(resultValue(res), u)
		}
		rec[cf.field] = value.Scaled(cf.spec.Factor)
	}
	return rec
}

// resultValue hands a gjson result to the normalizer. Numbers keep their
// decimal text; objects and arrays stay raw JSON and read as malformed.
func resultValue(res gjson.Result) any {
	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return json.Number(res.Raw)
	case gjson.String:
		return res.Str
	case gjson.True, gjson.False:
		return res.Bool()
	}
	if !res.Exists() {
		return nil
	}
	return res.Raw
}

// checkPath rejects paths gjson would silently never match.
func checkPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("empty path")
	}
	if strings.HasPrefix(p, ".") || strings.HasSuffix(p, ".") || strings.Contains(p, "..") {
		return fmt.Errorf("path %q has an empty segment", p)
	}
	depth := 0
	for _, c := range p {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			break
		}
	}
	if depth != 0 {
		return fmt.Errorf("path %q has unbalanced query parentheses", p)
	}
	return nil
}

// Fields lists the raw fields the schema can fill.
func (s *Schema) Fields() []raw.Field {
	out := make([]raw.Field, 0, len(s.fields))
	for _, cf := range s.fields {
		out = append(out, cf.field)
	}
	return out
}

// ParseField matches name against the known raw fields ignoring case.
func ParseField(name string) (raw.Field, bool) {
	for _, f := range raw.Fields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}
