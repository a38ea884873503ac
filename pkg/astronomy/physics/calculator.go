// Package physics derives surface and orbital quantities from normalized
// body data using closed-form Newtonian formulas.
package physics

import (
	"math"

	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/normalize"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/orbital"
)

// Derived holds quantities computed from a body's normalized data. Each
// field is absent unless all of its inputs are present and non-degenerate.
type Derived struct {
	SurfaceGravity          astromath.Value `json:"surface_gravity_ms2"`
	EscapeVelocity          astromath.Value `json:"escape_velocity_ms"`
	OrbitalVelocity         astromath.Value `json:"orbital_velocity_ms"`
	CentripetalAcceleration astromath.Value `json:"centripetal_acceleration_ms2"`
	OrbitalPeriod           astromath.Value `json:"orbital_period_s"`

	// AssumedCircularOrbit is set when eccentricity was not measured and
	// the orbital quantities use e = 0.
	AssumedCircularOrbit bool `json:"assumed_circular_orbit"`
}

// Derive computes every derived quantity independently, so one missing
// input only voids the outputs that need it.
func Derive(q normalize.Quantities) Derived {
	mass := q.Mass.Require(astromath.Positive, astromath.ErrDegenerateInput)
	radius := q.MeanRadius.Require(astromath.Positive, astromath.ErrDegenerateInput)
	mu := mass.Scale(orbital.G)

	oe := orbital.Elements{
		SemiMajorAxis: q.SemiMajorAxis,
		Eccentricity:  q.Eccentricity,
	}
	periapsis := oe.GetPerihelion()
	velocity := oe.GetPeriapsisSpeed(mu)

	return Derived{
		SurfaceGravity:          SurfaceGravity(mass, radius),
		EscapeVelocity:          EscapeVelocity(mass, radius),
		OrbitalVelocity:         velocity,
		CentripetalAcceleration: CentripetalAcceleration(velocity, periapsis),
		OrbitalPeriod:           oe.GetOrbitalPeriod(mu),
		AssumedCircularOrbit:    q.Eccentricity.IsDefault(),
	}
}

// SurfaceGravity returns G·M/R².
func SurfaceGravity(mass, radius astromath.Value) astromath.Value {
	radius = radius.Require(astromath.Positive, astromath.ErrDegenerateInput)
	return astromath.Lift2(func(m, r float64) float64 {
		return orbital.G * m / (r * r)
	}, mass.Require(astromath.Positive, astromath.ErrDegenerateInput), radius)
}

// EscapeVelocity returns sqrt(2·G·M/R) from the surface.
func EscapeVelocity(mass, radius astromath.Value) astromath.Value {
	radius = radius.Require(astromath.Positive, astromath.ErrDegenerateInput)
	return astromath.Lift2(func(m, r float64) float64 {
		return math.Sqrt(2 * orbital.G * m / r)
	}, mass.Require(astromath.Positive, astromath.ErrDegenerateInput), radius)
}

// CentripetalAcceleration returns v²/r.
func CentripetalAcceleration(velocity, r astromath.Value) astromath.Value {
	r = r.Require(astromath.Positive, astromath.ErrDegenerateInput)
	return astromath.Lift2(func(v, r float64) float64 {
		return v * v / r
	}, velocity, r)
}
