// Package analysis summarizes one quantity across several body lookups.
package analysis

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/format"
	astromath "github.com/oxygene76/celestial-lookup/pkg/astronomy/math"
	"github.com/oxygene76/celestial-lookup/pkg/lookup"
)

// Looker looks up one body by name
type Looker interface {
	Lookup(ctx context.Context, name string) (*types.LookupReport, error)
}

// Ranked is one body's value in a comparison.
type Ranked struct {
	Body  string          `json:"body"`
	Value astromath.Value `json:"value"`
	Text  string          `json:"text"`
}

// Summary describes a quantity over a set of bodies. Statistics that
// need more samples than were available are absent.
type Summary struct {
	Quantity string          `json:"quantity"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Count    int             `json:"count"`
	Missing  []string        `json:"missing,omitempty"`
	Mean     astromath.Value `json:"mean"`
	StdDev   astromath.Value `json:"std_dev"`
	Median   astromath.Value `json:"median"`

	// Ranking lists the bodies with a value, largest first.
	Ranking []Ranked `json:"ranking"`
}

// Min returns the smallest ranked body.
func (s Summary) Min() (Ranked, bool) {
	if len(s.Ranking) == 0 {
		return Ranked{}, false
	}
	return s.Ranking[len(s.Ranking)-1], true
}

// Max returns the largest ranked body.
func (s Summary) Max() (Ranked, bool) {
	if len(s.Ranking) == 0 {
		return Ranked{}, false
	}
	return s.Ranking[0], true
}

// Compare summarizes key over reports. Bodies without the quantity are
// listed in Missing.
func Compare(reports []*types.LookupReport, key string) (Summary, error) {
	q, err := lookup.QuantityByKey(key)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Quantity: q.Key, Name: q.Name, Unit: q.Unit}
	var (
		values []float64
		found  []Ranked
	)
	for _, r := range reports {
		v := q.Value(r.Normalized, r.Derived)
		x, ok := v.Get()
		if !ok {
			summary.Missing = append(summary.Missing, r.Body)
			continue
		}
		values = append(values, x)
		found = append(found, Ranked{Body: r.Body, Value: v, Text: format.Format(r.Body, v, q.Unit)})
	}

	summary.Count = len(values)
	if summary.Count == 0 {
		summary.Mean = astromath.Absent(astromath.ErrMissingInput)
		summary.StdDev = astromath.Absent(astromath.ErrMissingInput)
		summary.Median = astromath.Absent(astromath.ErrMissingInput)
		return summary, nil
	}

	mean, std := stat.MeanStdDev(values, nil)
	summary.Mean = astromath.Of(mean)
	if summary.Count > 1 {
		summary.StdDev = astromath.Of(std)
	} else {
		summary.StdDev = astromath.Absent(astromath.ErrDegenerateInput)
	}

	// Argsort sorts values ascending and records where each came from.
	inds := make([]int, len(values))
	floats.Argsort(values, inds)
	summary.Median = astromath.Of(median(values))

	summary.Ranking = make([]Ranked, 0, len(found))
	for i := len(inds) - 1; i >= 0; i-- {
		summary.Ranking = append(summary.Ranking, found[inds[i]])
	}
	return summary, nil
}

// median of ascending values; even counts average the two middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Collect looks up every name, stopping at the first failure.
func Collect(ctx context.Context, l Looker, names []string) ([]*types.LookupReport, error) {
	reports := make([]*types.LookupReport, 0, len(names))
	for _, name := range names {
		r, err := l.Lookup(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", name, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
