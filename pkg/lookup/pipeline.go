// Package lookup wires the catalog, a document fetcher and the source
// adapters to the normalize, physics and format packages.
package lookup

import (
	"context"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/format"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/normalize"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/physics"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
	"github.com/oxygene76/celestial-lookup/pkg/catalog"
	"github.com/oxygene76/celestial-lookup/pkg/sources"
)

// Lookup outcomes reported to an Observer.
const (
	OutcomeOK          = "ok"
	OutcomeUnknownBody = "unknown_body"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeError       = "error"
)

// Fetcher retrieves raw JSON source documents.
type Fetcher interface {
	Fetch(ctx context.Context, source, id string) ([]byte, error)
	// Schema names the adapter for documents from source.
	Schema(source string) (string, error)
}

// Observer is told about every finished lookup.
type Observer interface {
	ObserveLookup(source, outcome string, elapsed time.Duration)
	ObserveUnknown(key string)
}

// Pipeline runs body lookups. It holds no per-lookup state and is safe
// for concurrent use.
type Pipeline struct {
	catalog  *catalog.Catalog
	fetcher  Fetcher
	adapters *sources.Registry
	order    []Quantity
	logger   log.Logger
	observer Observer
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver reports lookups to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a pipeline that renders the display keys in order.
func New(cat *catalog.Catalog, fetcher Fetcher, adapters *sources.Registry, order []string, logger log.Logger, opts ...Option) (*Pipeline, error) {
	quantities, err := ParseOrder(order)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	p := &Pipeline{
		catalog:  cat,
		fetcher:  fetcher,
		adapters: adapters,
		order:    quantities,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Catalog returns the pipeline's catalog.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Lookup fetches the named body and evaluates it. Only unknown bodies,
// unknown sources and failed fetches are errors; missing data shows up as
// Unknown values in the report.
func (p *Pipeline) Lookup(ctx context.Context, name string) (*types.LookupReport, error) {
	start := p.now()

	entry, err := p.catalog.Find(name)
	if err != nil {
		p.observe("", OutcomeUnknownBody, start)
		return nil, err
	}

	logger := p.logger.With("body", entry.Name, "source", entry.Source)

	adapter, err := p.adapter(entry.Source)
	if err != nil {
		p.observe(entry.Source, OutcomeError, start)
		return nil, err
	}

	doc, err := p.fetcher.Fetch(ctx, entry.Source, entry.ID)
	if err != nil {
		p.observe(entry.Source, OutcomeFetchFailed, start)
		logger.Error("fetch failed", "id", entry.ID, "err", err)
		return nil, err
	}

	report := p.Evaluate(entry, adapter.Adapt(doc))
	report.Duration = p.now().Sub(start)

	for _, issue := range report.Normalized.Issues {
		logger.Debug("unusable field", "field", string(issue.Field), "err", issue.Err)
	}
	unknown := report.UnknownKeys()
	if p.observer != nil {
		for _, key := range unknown {
			p.observer.ObserveUnknown(key)
		}
	}
	p.observe(entry.Source, OutcomeOK, start)
	logger.Info("lookup finished", "unknown", len(unknown), "duration", report.Duration)

	return report, nil
}

// Evaluate runs the core on a record that is already in hand.
func (p *Pipeline) Evaluate(entry catalog.Entry, rec raw.Record) *types.LookupReport {
	q := normalize.Normalize(rec)
	d := physics.Derive(q)

	entries := make([]format.Entry, 0, len(p.order))
	for _, x := range p.order {
		entries = append(entries, format.Entry{
			Key:   x.Key,
			Name:  x.Name,
			Unit:  x.Unit,
			Value: x.Value(q, d),
		})
	}

	var issues []string
	for _, issue := range q.Issues {
		issues = append(issues, issue.String())
	}

	return &types.LookupReport{
		Body:       entry.Name,
		Kind:       entry.Kind,
		Source:     entry.Source,
		SourceID:   entry.ID,
		Symbol:     entry.Symbol,
		Orbits:     entry.OrbitsText(),
		Normalized: q,
		Derived:    d,
		Display:    format.Render(entries),
		Issues:     issues,
		Timestamp:  p.now().UTC(),
	}
}

func (p *Pipeline) adapter(source string) (sources.Adapter, error) {
	schema, err := p.fetcher.Schema(source)
	if err != nil {
		return nil, err
	}
	adapter, err := p.adapters.Get(schema)
	if err != nil {
		return nil, errors.Wrapf(types.ErrUnknownSource, "source %s uses schema %q: %v", source, schema, err)
	}
	return adapter, nil
}

func (p *Pipeline) observe(source, outcome string, start time.Time) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveLookup(source, outcome, p.now().Sub(start))
}
