// Package raw holds body records as a data source delivers them: sparse,
// loosely typed and in the source's own units.
package raw

// Field names a raw quantity independent of the source that supplied it.
type Field string

const (
	Mass           Field = "mass"
	GM             Field = "gm"
	MeanRadius     Field = "meanRadius"
	SemiMajorAxis  Field = "semimajorAxis"
	OrbitalPeriod  Field = "sideralOrbit"
	RotationPeriod Field = "sideralRotation"
	Eccentricity   Field = "eccentricity"
	OrbitalSpeed   Field = "avgOrbitalSpeed"
	EscapeVelocity Field = "escapeVelocity"
)

// Fields lists every known field in a stable order.
var Fields = []Field{
	Mass, GM, MeanRadius, SemiMajorAxis, OrbitalPeriod,
	RotationPeriod, Eccentricity, OrbitalSpeed, EscapeVelocity,
}

// Value is one raw field. Scalar, Mantissa and Exponent hold whatever the
// source decoded to (float64, int, json.Number, string or nil).
type Value struct {
	Scalar   any
	Mantissa any
	Exponent any
	Pair     bool
	Unit     Unit
	// Factor multiplies the value after unit conversion; zero means 1.
	Factor float64
}

// Number builds a scalar value in the given unit.
func Number(v any, u Unit) Value {
	return Value{Scalar: v, Unit: u}
}

// Scientific builds a mantissa × 10^exponent value in the given unit.
func Scientific(mantissa, exponent any, u Unit) Value {
	return Value{Mantissa: mantissa, Exponent: exponent, Pair: true, Unit: u}
}

// Scaled returns a copy of v with Factor set.
func (v Value) Scaled(factor float64) Value {
	v.Factor = factor
	return v
}

// IsNull reports whether the value carries nothing at all.
func (v Value) IsNull() bool {
	if v.Pair {
		return v.Mantissa == nil
	}
	return v.Scalar == nil
}

// Record is a sparse mapping of fields to raw values.
type Record map[Field]Value

// Get returns the field unless it is absent or null.
func (r Record) Get(f Field) (Value, bool) {
	v, ok := r[f]
	if !ok || v.IsNull() {
		return Value{}, false
	}
	return v, true
}

// Set stores a field and returns the record for chaining.
func (r Record) Set(f Field, v Value) Record {
	r[f] = v
	return r
}
