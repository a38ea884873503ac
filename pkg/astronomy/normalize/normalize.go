// Package normalize converts raw body records into SI quantities.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"

	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/orbital"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
)

// Exponent and mantissa bounds inside which mass is composed as an exact
// decimal product.
const (
	maxExactExponent = 40
	maxExactMantissa = 1e15
)

// Quantities are the SI values of one body. Every present value is finite
// and correctly scaled.
type Quantities struct {
	Mass           astromath.Value `json:"mass_kg"`
	MeanRadius     astromath.Value `json:"mean_radius_m"`
	SemiMajorAxis  astromath.Value `json:"semi_major_axis_m"`
	OrbitalPeriod  astromath.Value `json:"sidereal_orbit_s"`
	RotationPeriod astromath.Value `json:"sidereal_rotation_s"`
	// Eccentricity is Default(0) when the source gave none.
	Eccentricity   astromath.Value `json:"eccentricity"`
	OrbitalSpeed   astromath.Value `json:"avg_orbital_speed_ms"`
	EscapeVelocity astromath.Value `json:"escape_velocity_ms"`

	Issues []Issue `json:"issues,omitempty"`
}

// Issue records a raw field that was present but unusable.
type Issue struct {
	Field raw.Field `json:"field"`
	Err   error     `json:"-"`
}

// String implements fmt.Stringer
func (i Issue) String() string {
	return fmt.Sprintf("%s: %v", i.Field, i.Err)
}

// MarshalText lets Issue appear as a plain string in JSON.
func (i Issue) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Normalize converts r into SI quantities. It never fails: missing or
// malformed fields become absent values.
func Normalize(r raw.Record) Quantities {
	n := &normalizer{rec: r}

	q := Quantities{
		Mass:           n.mass(),
		MeanRadius:     n.scalar(raw.MeanRadius),
		SemiMajorAxis:  n.scalar(raw.SemiMajorAxis),
		OrbitalPeriod:  n.scalar(raw.OrbitalPeriod),
		RotationPeriod: n.scalar(raw.RotationPeriod),
		Eccentricity:   n.eccentricity(),
		OrbitalSpeed:   n.scalar(raw.OrbitalSpeed),
		EscapeVelocity: n.scalar(raw.EscapeVelocity),
	}
	q.Issues = n.issues
	return q
}

type normalizer struct {
	rec    raw.Record
	issues []Issue
}

func (n *normalizer) fail(f raw.Field, err error) astromath.Value {
	n.issues = append(n.issues, Issue{Field: f, Err: err})
	return astromath.Absent(astromath.ErrMalformedValue)
}

// scalar reads a field and converts it into SI.
func (n *normalizer) scalar(f raw.Field) astromath.Value {
	v, ok := n.rec.Get(f)
	if !ok {
		return astromath.Absent(astromath.ErrMissingInput)
	}

	factor, dim, ok := v.Unit.ToSI()
	if !ok || dim != f.Dimension() {
		return n.fail(f, errors.Wrapf(astromath.ErrMalformedValue, "unit %q does not measure %s", v.Unit, f))
	}

	var x float64
	if v.Pair {
		mantissa, err := toFloat(v.Mantissa)
		if errors.IsOf(err, astromath.ErrMissingInput) {
			return astromath.Absent(astromath.ErrMissingInput)
		}
		if err != nil {
			return n.fail(f, errors.Wrap(err, "mantissa"))
		}
		exponent, err := toExponent(v.Exponent)
		if err != nil {
			return n.fail(f, errors.Wrap(err, "exponent"))
		}
		x = scientific(mantissa, exponent)
	} else {
		var err error
		if x, err = toFloat(v.Scalar); err != nil {
			if errors.IsOf(err, astromath.ErrMissingInput) {
				return astromath.Absent(astromath.ErrMissingInput)
			}
			return n.fail(f, err)
		}
	}

	x *= factor
	if v.Factor != 0 {
		x *= v.Factor
	}
	out := astromath.Of(x)
	if !out.IsPresent() {
		return n.fail(f, errors.Wrapf(astromath.ErrMalformedValue, "%s overflows", f))
	}
	return out
}

// mass prefers a direct mass and falls back to GM/G.
func (n *normalizer) mass() astromath.Value {
	m := n.scalar(raw.Mass)
	if m.IsPresent() {
		return m
	}
	gm := n.scalar(raw.GM)
	if !gm.IsPresent() {
		return m
	}
	return gm.Scale(1 / orbital.G)
}

func (n *normalizer) eccentricity() astromath.Value {
	e := n.scalar(raw.Eccentricity)
	if e.IsPresent() {
		return e
	}
	return astromath.Default(0)
}

// toFloat reads a loosely typed number.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, astromath.ErrMissingInput
	case bool:
		return 0, errors.Wrapf(astromath.ErrMalformedValue, "boolean %t", x)
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, astromath.ErrMissingInput
		}
		v = strings.TrimSpace(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Wrapf(astromath.ErrMalformedValue, "%v", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(astromath.ErrMalformedValue, "non-finite %v", f)
	}
	return f, nil
}

// toExponent reads a decimal exponent. An absent exponent is 0.
func toExponent(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	f, err := toFloat(v)
	if errors.IsOf(err, astromath.ErrMissingInput) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 400 {
		return 0, errors.Wrapf(astromath.ErrMalformedValue, "exponent %v is not a small integer", f)
	}
	return int64(f), nil
}

// scientific returns mantissa × 10^exponent, rounded once from the exact
// decimal product where the operands allow it.
func scientific(mantissa float64, exponent int64) float64 {
	if exponent >= 0 && exponent <= maxExactExponent && math.Abs(mantissa) < maxExactMantissa {
		d, err := sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(mantissa, 'f', -1, 64))
		if err == nil {
			product := d.Mul(sdkmath.LegacyNewDec(10).Power(uint64(exponent)))
			if f, err := product.Float64(); err == nil {
				return f
			}
		}
	}
	if exponent < 0 {
		return mantissa / math.Pow10(int(-exponent))
	}
	return mantissa * math.Pow10(int(exponent))
}
