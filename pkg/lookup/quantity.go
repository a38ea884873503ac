package lookup

import (
	"cosmossdk.io/errors"

	"github.com/oxygene76/celestial-lookup/internal/types"
	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/normalize"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/orbital"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/physics"
)

// Quantity is one displayable value of a body.
type Quantity struct {
	Key  string
	Name string
	Unit string
	get  func(q normalize.Quantities, d physics.Derived) astromath.Value
}

// Value reads the quantity out of a body's results.
func (x Quantity) Value(q normalize.Quantities, d physics.Derived) astromath.Value {
	return x.get(q, d)
}

var quantities = []Quantity{
	{Key: "mass", Name: "Mass", Unit: "kg", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.Mass
	}},
	{Key: "sidereal_orbit", Name: "Sidereal Orbital Period", Unit: "s", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.OrbitalPeriod
	}},
	{Key: "mean_radius", Name: "Mean Radius", Unit: "m", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.MeanRadius
	}},
	{Key: "sidereal_rotation", Name: "Sidereal Rotation Period", Unit: "s", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.RotationPeriod
	}},
	{Key: "semi_major_axis", Name: "Semi-major Axis", Unit: "m", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.SemiMajorAxis
	}},
	{Key: "eccentricity", Name: "Eccentricity", Unit: "", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.Eccentricity
	}},
	{Key: "periapsis", Name: "Periapsis Distance", Unit: "m", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return elements(q).GetPerihelion()
	}},
	{Key: "apoapsis", Name: "Apoapsis Distance", Unit: "m", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return elements(q).GetAphelion()
	}},
	{Key: "avg_orbital_speed", Name: "Average Orbital Speed", Unit: "m/s", get: func(q normalize.Quantities, _ physics.Derived) astromath.Value {
		return q.OrbitalSpeed
	}},
	{Key: "surface_gravity", Name: "Surface Gravity", Unit: "m/s^2", get: func(_ normalize.Quantities, d physics.Derived) astromath.Value {
		return d.SurfaceGravity
	}},
	// computed from mass and radius, falling back to the value the source supplied
	{Key: "escape_velocity", Name: "Escape Velocity", Unit: "m/s", get: func(q normalize.Quantities, d physics.Derived) astromath.Value {
		return d.EscapeVelocity.Or(q.EscapeVelocity)
	}},
	{Key: "orbital_velocity", Name: "Orbital Velocity", Unit: "m/s", get: func(_ normalize.Quantities, d physics.Derived) astromath.Value {
		return d.OrbitalVelocity
	}},
	{Key: "centripetal_acceleration", Name: "Centripetal Acceleration", Unit: "m/s^2", get: func(_ normalize.Quantities, d physics.Derived) astromath.Value {
		return d.CentripetalAcceleration
	}},
	{Key: "orbital_period", Name: "Orbital Period", Unit: "s", get: func(_ normalize.Quantities, d physics.Derived) astromath.Value {
		return d.OrbitalPeriod
	}},
}

func elements(q normalize.Quantities) orbital.Elements {
	return orbital.Elements{SemiMajorAxis: q.SemiMajorAxis, Eccentricity: q.Eccentricity}
}

// Quantities returns every known quantity in table order.
func Quantities() []Quantity {
	out := make([]Quantity, len(quantities))
	copy(out, quantities)
	return out
}

// QuantityByKey returns the quantity named key.
func QuantityByKey(key string) (Quantity, error) {
	for _, x := range quantities {
		if x.Key == key {
			return x, nil
		}
	}
	return Quantity{}, errors.Wrapf(types.ErrUnknownQuantity, "%q", key)
}

// ParseOrder resolves display keys, keeping their order.
func ParseOrder(keys []string) ([]Quantity, error) {
	out := make([]Quantity, 0, len(keys))
	for _, key := range keys {
		x, err := QuantityByKey(key)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}
