package types

import (
	"time"

	"github.com/oxygene76/celestial-lookup/pkg/astronomy/format"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/normalize"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/physics"
)

// LookupReport is the result of looking up one body
type LookupReport struct {
	Body       string                `json:"body"`
	Kind       string                `json:"kind,omitempty"`
	Source     string                `json:"source"`
	SourceID   string                `json:"source_id"`
	Symbol     string                `json:"symbol,omitempty"`
	Orbits     string                `json:"orbits,omitempty"`
	Normalized normalize.Quantities  `json:"normalized"`
	Derived    physics.Derived       `json:"derived"`
	Display    []format.DisplayValue `json:"display"`
	Issues     []string              `json:"issues,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
	Duration   time.Duration         `json:"duration"`
}

// Quantity returns the display value for key.
func (r *LookupReport) Quantity(key string) (format.DisplayValue, bool) {
	for _, d := range r.Display {
		if d.Key == key {
			return d, true
		}
	}
	return format.DisplayValue{}, false
}

// UnknownKeys lists the display keys whose value is absent.
func (r *LookupReport) UnknownKeys() []string {
	var keys []string
	for _, d := range r.Display {
		if !d.Value.IsPresent() {
			keys = append(keys, d.Key)
		}
	}
	return keys
}
