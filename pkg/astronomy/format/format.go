// Package format renders physical quantities spanning many orders of
// magnitude as display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
)

// Unknown is rendered in place of an absent value.
const Unknown = "Unknown"

// Exponents inside this band are rendered in fixed-point notation.
const (
	minFixedExponent = -2
	maxFixedExponent = 2
)

// Notation is how a value was rendered.
type Notation string

const (
	NotationFixed      Notation = "fixed"
	NotationScientific Notation = "scientific"
	NotationUnknown    Notation = "unknown"
)

// Entry asks for one display line.
type Entry struct {
	Key   string
	Name  string
	Unit  string
	Value astromath.Value
}

// DisplayValue is a rendered Entry.
type DisplayValue struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Value    astromath.Value `json:"value"`
	Notation Notation        `json:"notation"`
	Text     string          `json:"text"`
	Long     string          `json:"long"`
}

// Render formats entries in the order given.
func Render(entries []Entry) []DisplayValue {
	out := make([]DisplayValue, 0, len(entries))
	for _, e := range entries {
		text, notation := render(e.Name, e.Value, e.Unit)
		out = append(out, DisplayValue{
			Key:      e.Key,
			Name:     e.Name,
			Unit:     e.Unit,
			Value:    e.Value,
			Notation: notation,
			Text:     text,
			Long:     LongForm(e.Value),
		})
	}
	return out
}

// Format renders "<name>: <value> <unit>", choosing fixed-point for
// exponents in [-2, 2] and mantissa × 10^e otherwise.
func Format(name string, v astromath.Value, unit string) string {
	text, _ := render(name, v, unit)
	return text
}

func render(name string, v astromath.Value, unit string) (string, Notation) {
	x, ok := v.Get()
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
		return name + ": " + Unknown, NotationUnknown
	}

	if fixed(exponent(x)) {
		return withUnit(fmt.Sprintf("%s: %.3f", name, x), unit), NotationFixed
	}

	// 9.9996e3 rounds to 1.000e+04, 0.0099996 to 1.000e-02
	m, e := scientific(x)
	if fixed(e) {
		return withUnit(fmt.Sprintf("%s: %.3f", name, x), unit), NotationFixed
	}
	return withUnit(fmt.Sprintf("%s: %s × 10^%d", name, m, e), unit), NotationScientific
}

func fixed(e int) bool {
	return e >= minFixedExponent && e <= maxFixedExponent
}

// exponent returns floor(log10|x|), or 0 for x = 0. It reads the
// exponent from the shortest decimal form so subnormals and exact
// powers of ten are handled without Log10.
func exponent(x float64) int {
	if x == 0 {
		return 0
	}
	_, e := split(strconv.FormatFloat(x, 'e', -1, 64))
	return e
}

// scientific returns the mantissa of x rounded to three decimals and
// the exponent that goes with it.
func scientific(x float64) (string, int) {
	return split(strconv.FormatFloat(x, 'e', 3, 64))
}

func split(s string) (string, int) {
	i := strings.IndexByte(s, 'e')
	e, _ := strconv.Atoi(s[i+1:])
	return s[:i], e
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// LongForm renders v without an exponent, to 10 decimal places with
// trailing zeros and a trailing decimal point removed.
func LongForm(v astromath.Value) string {
	x, ok := v.Get()
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
		return Unknown
	}
	s := strconv.FormatFloat(x, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}
