package sources

import (
	"sort"

	"cosmossdk.io/errors"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/raw"
)

// Built-in source names.
const (
	SolarSystemOpenData  = "solar-system-opendata"
	JPLSmallBodyDatabase = "jpl-sbdb"
	NASAExoplanetArchive = "nasa-exoplanet-archive"
)

// SolarSystemOpenDataFields describes api.le-systeme-solaire.net bodies.
// The API reports 0 for values it does not know and gives sideralRotation
// in hours.
var SolarSystemOpenDataFields = map[string]FieldSpec{
	string(raw.Mass):           {Path: "mass.massValue", ExponentPath: "mass.massExponent", Unit: string(raw.Kilogram)},
	string(raw.MeanRadius):     {Path: "meanRadius", Unit: string(raw.Kilometer), ZeroIsUnknown: true},
	string(raw.SemiMajorAxis):  {Path: "semimajorAxis", Unit: string(raw.Kilometer), ZeroIsUnknown: true},
	string(raw.OrbitalPeriod):  {Path: "sideralOrbit", Unit: string(raw.Day), ZeroIsUnknown: true},
	string(raw.RotationPeriod): {Path: "sideralRotation", Unit: string(raw.Hour), ZeroIsUnknown: true},
	string(raw.Eccentricity):   {Path: "eccentricity", Unit: string(raw.Dimensionless), ZeroIsUnknown: true},
	string(raw.EscapeVelocity): {Path: "escape", Unit: string(raw.MeterPerSecond), ZeroIsUnknown: true},
}

// JPLSmallBodyFields describes ssd-api.jpl.nasa.gov sbdb.api responses
// requested with phys-par=1. Values arrive as strings.
var JPLSmallBodyFields = map[string]FieldSpec{
	string(raw.GM):             {Path: `phys_par.#(name=="GM").value`, Unit: string(raw.KilometerCubedPerSecondSquared)},
	string(raw.MeanRadius):     {Path: `phys_par.#(name=="diameter").value`, Unit: string(raw.Kilometer), Factor: 0.5},
	string(raw.RotationPeriod): {Path: `phys_par.#(name=="rot_per").value`, Unit: string(raw.Hour)},
	string(raw.SemiMajorAxis):  {Path: `orbit.elements.#(name=="a").value`, Unit: string(raw.AstronomicalUnit)},
	string(raw.OrbitalPeriod):  {Path: `orbit.elements.#(name=="per").value`, Unit: string(raw.Day)},
	string(raw.Eccentricity):   {Path: `orbit.elements.#(name=="e").value`, Unit: string(raw.Dimensionless)},
}

// NASAExoplanetArchiveFields describes a TAP sync query against the
// pscomppars table with format=json, which returns an array of rows.
var NASAExoplanetArchiveFields = map[string]FieldSpec{
	string(raw.Mass):          {Path: "0.pl_bmasse", Unit: string(raw.EarthMass)},
	string(raw.MeanRadius):    {Path: "0.pl_rade", Unit: string(raw.EarthRadius)},
	string(raw.SemiMajorAxis): {Path: "0.pl_orbsmax", Unit: string(raw.AstronomicalUnit)},
	string(raw.OrbitalPeriod): {Path: "0.pl_orbper", Unit: string(raw.Day)},
	string(raw.Eccentricity):  {Path: "0.pl_orbeccen", Unit: string(raw.Dimensionless)},
}

// Registry maps source names to adapters. It is built once and then only read.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns a registry holding adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Builtin returns a registry with every built-in schema.
func Builtin() *Registry {
	return NewRegistry(
		MustSchema(SolarSystemOpenData, SolarSystemOpenDataFields),
		MustSchema(JPLSmallBodyDatabase, JPLSmallBodyFields),
		MustSchema(NASAExoplanetArchive, NASAExoplanetArchiveFields),
	)
}

// Register adds or replaces an adapter.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownSource, "no adapter for %q", name)
	}
	return a, nil
}

// Names returns registered adapter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
