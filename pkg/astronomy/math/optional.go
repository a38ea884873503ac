package math

import (
	"encoding/json"
	"math"
)

// Value is a finite real quantity or an explicit absence.
// The zero Value is absent with ErrMissingInput as its reason.
type Value struct {
	v         float64
	present   bool
	defaulted bool
	reason    error
}

// Of returns a present Value. Non-finite inputs are absent and degenerate.
func Of(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Absent(ErrDegenerateInput)
	}
	return Value{v: v, present: true}
}

// Absent returns a Value carrying the reason it has no number.
func Absent(reason error) Value {
	if reason == nil {
		reason = ErrMissingInput
	}
	return Value{reason: reason}
}

// Default returns a present Value flagged as a default rather than a measurement.
func Default(v float64) Value {
	x := Of(v)
	x.defaulted = x.present
	return x
}

// Get returns the number and whether it is present.
func (x Value) Get() (float64, bool) {
	return x.v, x.present
}

// IsPresent reports whether x holds a number.
func (x Value) IsPresent() bool {
	return x.present
}

// IsDefault reports whether x was filled in by Default.
func (x Value) IsDefault() bool {
	return x.defaulted
}

// Reason returns why x is absent, or nil when present.
func (x Value) Reason() error {
	if x.present {
		return nil
	}
	if x.reason == nil {
		return ErrMissingInput
	}
	return x.reason
}

// Or returns x when present, otherwise other.
func (x Value) Or(other Value) Value {
	if x.present {
		return x
	}
	return other
}

// Require keeps x only if pred holds for its number.
func (x Value) Require(pred func(float64) bool, reason error) Value {
	if !x.present {
		return x
	}
	if !pred(x.v) {
		return Absent(reason)
	}
	return x
}

// Scale multiplies a present value by k.
func (x Value) Scale(k float64) Value {
	return Lift1(func(v float64) float64 { return v * k }, x)
}

// Lift1 applies f to a present operand.
func Lift1(f func(a float64) float64, a Value) Value {
	if !a.present {
		return Absent(a.Reason())
	}
	return Of(f(a.v))
}

// Lift2 applies f when both operands are present. The first absent
// operand's reason is kept.
func Lift2(f func(a, b float64) float64, a, b Value) Value {
	for _, x := range [...]Value{a, b} {
		if !x.present {
			return Absent(x.Reason())
		}
	}
	return Of(f(a.v, b.v))
}

// Lift3 applies f when all three operands are present.
func Lift3(f func(a, b, c float64) float64, a, b, c Value) Value {
	for _, x := range [...]Value{a, b, c} {
		if !x.present {
			return Absent(x.Reason())
		}
	}
	return Of(f(a.v, b.v, c.v))
}

// Positive is a Require predicate for strictly positive values.
func Positive(v float64) bool {
	return v > 0
}

// MarshalJSON encodes an absent value as null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.present {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

// UnmarshalJSON decodes null as a missing value.
func (x *Value) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*x = Absent(ErrMissingInput)
		return nil
	}
	*x = Of(*v)
	return nil
}
