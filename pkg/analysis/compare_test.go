package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/oxygene76/celestial-lookup/internal/types"
	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/normalize"
)

func massReport(body string, mass astromath.Value) *types.LookupReport {
	return &types.LookupReport{Body: body, Normalized: normalize.Quantities{Mass: mass}}
}

func get(t *testing.T, v astromath.Value) float64 {
	t.Helper()
	x, ok := v.Get()
	require.True(t, ok, "absent: %v", v.Reason())
	return x
}

func TestCompareMass(t *testing.T) {
	reports := []*types.LookupReport{
		massReport("Mars", astromath.Of(6.4171e23)),
		massReport("Earth", astromath.Of(5.97237e24)),
		massReport("Ghost", astromath.Absent(astromath.ErrMissingInput)),
		massReport("Venus", astromath.Of(4.8675e24)),
	}

	s, err := Compare(reports, "mass")
	require.NoError(t, err)

	assert.Equal(t, "Mass", s.Name)
	assert.Equal(t, "kg", s.Unit)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []string{"Ghost"}, s.Missing)

	mean := (6.4171e23 + 5.97237e24 + 4.8675e24) / 3
	assert.True(t, scalar.EqualWithinRel(mean, get(t, s.Mean), 1e-12))
	assert.Equal(t, 4.8675e24, get(t, s.Median))
	assert.Greater(t, get(t, s.StdDev), 0.0)

	var order []string
	for _, r := range s.Ranking {
		order = append(order, r.Body)
	}
	assert.Equal(t, []string{"Earth", "Venus", "Mars"}, order)

	hi, ok := s.Max()
	require.True(t, ok)
	assert.Equal(t, "Earth: 5.972 × 10^24 kg", hi.Text)
	lo, ok := s.Min()
	require.True(t, ok)
	assert.Equal(t, "Mars", lo.Body)
}

func TestCompareSingleBody(t *testing.T) {
	s, err := Compare([]*types.LookupReport{massReport("Moon", astromath.Of(7.346e22))}, "mass")
	require.NoError(t, err)

	assert.Equal(t, 7.346e22, get(t, s.Mean))
	assert.False(t, s.StdDev.IsPresent())
	assert.True(t, errors.Is(s.StdDev.Reason(), astromath.ErrDegenerateInput))
}

func TestCompareNothingKnown(t *testing.T) {
	s, err := Compare([]*types.LookupReport{massReport("Ghost", astromath.Absent(nil))}, "mass")
	require.NoError(t, err)

	assert.Zero(t, s.Count)
	assert.False(t, s.Mean.IsPresent())
	assert.Empty(t, s.Ranking)
	_, ok := s.Max()
	assert.False(t, ok)
}

func TestCompareMedianEvenCount(t *testing.T) {
	reports := []*types.LookupReport{
		massReport("A", astromath.Of(4)),
		massReport("B", astromath.Of(1)),
		massReport("C", astromath.Of(10)),
		massReport("D", astromath.Of(2)),
	}

	s, err := Compare(reports, "mass")
	require.NoError(t, err)
	assert.Equal(t, 3.0, get(t, s.Median))

	s, err = Compare(reports[:2], "mass")
	require.NoError(t, err)
	assert.Equal(t, 2.5, get(t, s.Median))
}

func TestCompareUnknownQuantity(t *testing.T) {
	_, err := Compare(nil, "colour")
	assert.True(t, errors.Is(err, types.ErrUnknownQuantity))
}

type mapLooker map[string]*types.LookupReport

func (m mapLooker) Lookup(_ context.Context, name string) (*types.LookupReport, error) {
	r, ok := m[name]
	if !ok {
		return nil, types.ErrUnknownBody
	}
	return r, nil
}

func TestCollect(t *testing.T) {
	l := mapLooker{
		"Earth": massReport("Earth", astromath.Of(1)),
		"Mars":  massReport("Mars", astromath.Of(2)),
	}

	reports, err := Collect(context.Background(), l, []string{"Mars", "Earth"})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Mars", reports[0].Body)

	_, err = Collect(context.Background(), l, []string{"Earth", "Vulcan"})
	assert.True(t, errors.Is(err, types.ErrUnknownBody))
	assert.Contains(t, err.Error(), "Vulcan")
}
