package raw

import (
	"gonum.org/v1/gonum/unit"
)

// Unit is the unit a source supplied a field in.
type Unit string

const (
	Kilogram    Unit = "kg"
	EarthMass   Unit = "M_earth"
	JupiterMass Unit = "M_jup"

	Meter            Unit = "m"
	Kilometer        Unit = "km"
	AstronomicalUnit Unit = "au"
	EarthRadius      Unit = "R_earth"
	JupiterRadius    Unit = "R_jup"

	Second Unit = "s"
	Hour   Unit = "h"
	Day    Unit = "d"

	MeterPerSecond     Unit = "m/s"
	KilometerPerSecond Unit = "km/s"

	// KilometerCubedPerSecondSquared is the unit of a GM product.
	KilometerCubedPerSecondSquared Unit = "km^3/s^2"

	Dimensionless Unit = ""
)

// Dimension groups units that convert into the same SI quantity.
type Dimension int

const (
	DimUnknown Dimension = iota
	DimMass
	DimLength
	DimTime
	DimSpeed
	DimGravParam
	DimNone
)

const (
	MetersPerAU       = 1.496e11
	SecondsPerDay     = 86400
	SecondsPerHour    = 3600
	KgPerEarthMass    = 5.9722e24
	KgPerJupiterMass  = 1.89813e27
	MPerEarthRadius   = 6.3781e6
	MPerJupiterRadius = 7.1492e7
)

type conversion struct {
	dim  Dimension
	toSI float64
}

var conversions = map[Unit]conversion{
	Kilogram:    {DimMass, 1},
	EarthMass:   {DimMass, KgPerEarthMass},
	JupiterMass: {DimMass, KgPerJupiterMass},

	Meter:            {DimLength, 1},
	Kilometer:        {DimLength, unit.Kilo},
	AstronomicalUnit: {DimLength, MetersPerAU},
	EarthRadius:      {DimLength, MPerEarthRadius},
	JupiterRadius:    {DimLength, MPerJupiterRadius},

	Second: {DimTime, 1},
	Hour:   {DimTime, SecondsPerHour},
	Day:    {DimTime, SecondsPerDay},

	MeterPerSecond:     {DimSpeed, 1},
	KilometerPerSecond: {DimSpeed, unit.Kilo},

	KilometerCubedPerSecondSquared: {DimGravParam, unit.Kilo * unit.Kilo * unit.Kilo},

	Dimensionless: {DimNone, 1},
}

// ToSI returns the factor converting u into its SI unit and the dimension
// it measures. Unknown units report ok=false.
func (u Unit) ToSI() (factor float64, dim Dimension, ok bool) {
	c, ok := conversions[u]
	if !ok {
		return 0, DimUnknown, false
	}
	return c.toSI, c.dim, true
}

// Dimension returns the dimension a field is measured in.
func (f Field) Dimension() Dimension {
	switch f {
	case Mass:
		return DimMass
	case GM:
		return DimGravParam
	case MeanRadius, SemiMajorAxis:
		return DimLength
	case OrbitalPeriod, RotationPeriod:
		return DimTime
	case OrbitalSpeed, EscapeVelocity:
		return DimSpeed
	case Eccentricity:
		return DimNone
	}
	return DimUnknown
}
