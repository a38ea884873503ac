package orbital

import (
	"math"

	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
)

// Elements is the subset of Keplerian elements a catalog lookup can supply.
// Distances are in metres.
type Elements struct {
	SemiMajorAxis astromath.Value // a (m)
	Eccentricity  astromath.Value // e (0-1)
}

// GetPerihelion returns the periapsis distance a(1-e). Open or parabolic
// orbits (e >= 1) and non-positive axes yield a degenerate absence.
func (oe Elements) GetPerihelion() astromath.Value {
	return astromath.Lift2(func(a, e float64) float64 {
		return a * (1 - e)
	}, oe.SemiMajorAxis, oe.Eccentricity).Require(astromath.Positive, astromath.ErrDegenerateInput)
}

// GetAphelion returns the apoapsis distance a(1+e)
func (oe Elements) GetAphelion() astromath.Value {
	q := oe.GetPerihelion()
	if !q.IsPresent() {
		return q
	}
	return astromath.Lift2(func(a, e float64) float64 {
		return a * (1 + e)
	}, oe.SemiMajorAxis, oe.Eccentricity)
}

// GetOrbitalPeriod returns 2π·sqrt(a³/mu) in seconds for mu in m³/s².
func (oe Elements) GetOrbitalPeriod(mu astromath.Value) astromath.Value {
	a := oe.SemiMajorAxis.Require(astromath.Positive, astromath.ErrDegenerateInput)
	mu = mu.Require(astromath.Positive, astromath.ErrDegenerateInput)
	return astromath.Lift2(func(a, mu float64) float64 {
		return 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/mu)
	}, a, mu)
}

// GetPeriapsisSpeed returns sqrt(mu/q), the circular speed at the
// periapsis distance q.
func (oe Elements) GetPeriapsisSpeed(mu astromath.Value) astromath.Value {
	mu = mu.Require(astromath.Positive, astromath.ErrDegenerateInput)
	return astromath.Lift2(func(mu, q float64) float64 {
		return math.Sqrt(mu / q)
	}, mu, oe.GetPerihelion())
}

// G is the Newtonian constant of gravitation in N·m²/kg².
const G = 6.674e-11
