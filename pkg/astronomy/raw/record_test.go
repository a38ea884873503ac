package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordGetSkipsNull(t *testing.T) {
	r := Record{}
	r.Set(MeanRadius, Number(6371, Kilometer)).
		Set(OrbitalPeriod, Number(nil, Day)).
		Set(Mass, Scientific(nil, 24, Kilogram))

	v, ok := r.Get(MeanRadius)
	assert.True(t, ok)
	assert.Equal(t, 6371, v.Scalar)

	_, ok = r.Get(OrbitalPeriod)
	assert.False(t, ok)
	_, ok = r.Get(Mass)
	assert.False(t, ok)
	_, ok = r.Get(Eccentricity)
	assert.False(t, ok)
}

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		unit   Unit
		factor float64
		dim    Dimension
	}{
		{Kilometer, 1000, DimLength},
		{AstronomicalUnit, 1.496e11, DimLength},
		{Day, 86400, DimTime},
		{Hour, 3600, DimTime},
		{KilometerPerSecond, 1000, DimSpeed},
		{KilometerCubedPerSecondSquared, 1e9, DimGravParam},
		{Dimensionless, 1, DimNone},
	}
	for _, tt := range tests {
		factor, dim, ok := tt.unit.ToSI()
		assert.True(t, ok, tt.unit)
		assert.Equal(t, tt.factor, factor, tt.unit)
		assert.Equal(t, tt.dim, dim, tt.unit)
	}

	_, _, ok := Unit("furlong").ToSI()
	assert.False(t, ok)
}

func TestFieldDimensions(t *testing.T) {
	for _, f := range Fields {
		assert.NotEqual(t, DimUnknown, f.Dimension(), f)
	}
	assert.Equal(t, DimUnknown, Field("colour").Dimension())
}
