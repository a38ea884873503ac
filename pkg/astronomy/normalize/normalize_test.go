package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/orbital"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
)

func mustGet(t *testing.T, v astromath.Value) float64 {
	t.Helper()
	x, ok := v.Get()
	require.True(t, ok, "expected a present value, got reason %v", v.Reason())
	return x
}

func TestNormalizeEmptyRecord(t *testing.T) {
	q := Normalize(raw.Record{})

	for name, v := range map[string]astromath.Value{
		"mass":            q.Mass,
		"mean radius":     q.MeanRadius,
		"semi-major axis": q.SemiMajorAxis,
		"orbital period":  q.OrbitalPeriod,
		"rotation period": q.RotationPeriod,
		"orbital speed":   q.OrbitalSpeed,
		"escape velocity": q.EscapeVelocity,
	} {
		assert.False(t, v.IsPresent(), name)
		assert.True(t, errors.Is(v.Reason(), astromath.ErrMissingInput), name)
	}

	assert.Equal(t, 0.0, mustGet(t, q.Eccentricity))
	assert.True(t, q.Eccentricity.IsDefault())
	assert.Empty(t, q.Issues)
}

func TestNormalizeMassPairIsExact(t *testing.T) {
	q := Normalize(raw.Record{
		raw.Mass: raw.Scientific(5.972, 24, raw.Kilogram),
	})
	assert.Equal(t, 5.972e24, mustGet(t, q.Mass))
}

func TestNormalizeMassPairFromJSON(t *testing.T) {
	var doc struct {
		Mass struct {
			MassValue    json.Number `json:"massValue"`
			MassExponent json.Number `json:"massExponent"`
		} `json:"mass"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mass":{"massValue":6.4171,"massExponent":23}}`), &doc))

	q := Normalize(raw.Record{
		raw.Mass: raw.Scientific(doc.Mass.MassValue, doc.Mass.MassExponent, raw.Kilogram),
	})
	assert.Equal(t, 6.4171e23, mustGet(t, q.Mass))
}

func TestNormalizeMassPairNegativeExponent(t *testing.T) {
	tests := []struct {
		mantissa float64
		exponent int
		want     float64
	}{
		{2.5, -3, 2.5e-3},
		{1.5, -10, 1.5e-10},
		{3.75, -6, 3.75e-6},
	}
	for _, tt := range tests {
		q := Normalize(raw.Record{raw.Mass: raw.Scientific(tt.mantissa, tt.exponent, raw.Kilogram)})
		assert.Equal(t, tt.want, mustGet(t, q.Mass), "%v × 10^%d", tt.mantissa, tt.exponent)
	}
}

func TestNormalizeMissingExponentMeansZero(t *testing.T) {
	q := Normalize(raw.Record{raw.Mass: raw.Scientific(42.0, nil, raw.Kilogram)})
	assert.Equal(t, 42.0, mustGet(t, q.Mass))
}

func TestNormalizeUnitConversions(t *testing.T) {
	orbitDays, rotationDays, speedKms := 365.256, 0.99727, 29.78
	q := Normalize(raw.Record{
		raw.MeanRadius:     raw.Number(6371, raw.Kilometer),
		raw.SemiMajorAxis:  raw.Number(1.0, raw.AstronomicalUnit),
		raw.OrbitalPeriod:  raw.Number(orbitDays, raw.Day),
		raw.RotationPeriod: raw.Number("0.99727", raw.Day),
		raw.OrbitalSpeed:   raw.Number(speedKms, raw.KilometerPerSecond),
		raw.EscapeVelocity: raw.Number(11190, raw.MeterPerSecond),
		raw.Eccentricity:   raw.Number(0.0167, raw.Dimensionless),
	})

	assert.Equal(t, 6371000.0, mustGet(t, q.MeanRadius))
	assert.Equal(t, 1.496e11, mustGet(t, q.SemiMajorAxis))
	assert.Equal(t, orbitDays*86400, mustGet(t, q.OrbitalPeriod))
	assert.Equal(t, rotationDays*86400, mustGet(t, q.RotationPeriod))
	assert.Equal(t, speedKms*1000, mustGet(t, q.OrbitalSpeed))
	assert.Equal(t, 11190.0, mustGet(t, q.EscapeVelocity))
	assert.Equal(t, 0.0167, mustGet(t, q.Eccentricity))
	assert.False(t, q.Eccentricity.IsDefault())
}

func TestNormalizeFactor(t *testing.T) {
	// a diameter supplied as a radius source
	q := Normalize(raw.Record{raw.MeanRadius: raw.Number(939.4, raw.Kilometer).Scaled(0.5)})
	assert.Equal(t, 469700.0, mustGet(t, q.MeanRadius))
}

func TestNormalizeMassFromGM(t *testing.T) {
	q := Normalize(raw.Record{raw.GM: raw.Number("62.6284", raw.KilometerCubedPerSecondSquared)})
	assert.True(t, scalar.EqualWithinRel(mustGet(t, q.Mass), 62.6284e9/orbital.G, 1e-12))
}

func TestNormalizeDirectMassWinsOverGM(t *testing.T) {
	q := Normalize(raw.Record{
		raw.Mass: raw.Number(2, raw.EarthMass),
		raw.GM:   raw.Number(1, raw.KilometerCubedPerSecondSquared),
	})
	assert.Equal(t, 2*raw.KgPerEarthMass, mustGet(t, q.Mass))
}

func TestNormalizeMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		value raw.Value
	}{
		{"text", raw.Number("unknown", raw.Kilometer)},
		{"boolean", raw.Number(true, raw.Kilometer)},
		{"object", raw.Number(map[string]any{"v": 1}, raw.Kilometer)},
		{"NaN string", raw.Number("NaN", raw.Kilometer)},
		{"wrong dimension", raw.Number(10, raw.Day)},
		{"unknown unit", raw.Number(10, raw.Unit("furlong"))},
		{"fractional exponent", raw.Scientific(1.0, 2.5, raw.Kilometer)},
		{"overflow", raw.Number(1e308, raw.AstronomicalUnit)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Normalize(raw.Record{raw.MeanRadius: tt.value})
			assert.False(t, q.MeanRadius.IsPresent())
			assert.True(t, errors.Is(q.MeanRadius.Reason(), astromath.ErrMalformedValue))
			require.Len(t, q.Issues, 1)
			assert.Equal(t, raw.MeanRadius, q.Issues[0].Field)
			assert.True(t, errors.Is(q.Issues[0].Err, astromath.ErrMalformedValue))
		})
	}
}

func TestNormalizeBlankStringIsMissing(t *testing.T) {
	q := Normalize(raw.Record{raw.MeanRadius: raw.Number("  ", raw.Kilometer)})
	assert.True(t, errors.Is(q.MeanRadius.Reason(), astromath.ErrMissingInput))
	assert.Empty(t, q.Issues)
}

func TestNormalizeMalformedEccentricityDefaults(t *testing.T) {
	q := Normalize(raw.Record{raw.Eccentricity: raw.Number("n/a", raw.Dimensionless)})
	assert.True(t, q.Eccentricity.IsDefault())
	assert.Len(t, q.Issues, 1)
}

func TestNormalizeZeroIsKept(t *testing.T) {
	q := Normalize(raw.Record{raw.MeanRadius: raw.Number(0, raw.Kilometer)})
	assert.Equal(t, 0.0, mustGet(t, q.MeanRadius))
}

func TestIssueJSON(t *testing.T) {
	q := Normalize(raw.Record{raw.MeanRadius: raw.Number("abc", raw.Kilometer)})
	data, err := json.Marshal(q)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	issues, ok := decoded["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "meanRadius")
	assert.Nil(t, decoded["mean_radius_m"])
}
