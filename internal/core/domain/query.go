package domain

import "fmt"

// Query field names used in validation errors and in the REST contract.
const (
	FieldLocation  = "location"
	FieldTotalSqft = "total_sqft"
	FieldBedrooms  = "bedrooms"
	FieldBathrooms = "bathrooms"
	FieldBalconies = "balconies"
)

// PropertyQuery is the human-facing description of a property for a single request.
type PropertyQuery struct {
	Location  string
	TotalSqft float64
	Bedrooms  int
	Bathrooms int
	Balconies int
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Bounds is the sanity policy applied to the numeric fields of a query.
type Bounds struct {
	TotalSqft Range
	Bedrooms  Range
	Bathrooms Range
	Balconies Range
}

// Default policy bounds. Deployments override them through configuration.
const (
	DefaultMinTotalSqft = 300
	DefaultMaxTotalSqft = 20000
	DefaultMinBedrooms  = 1
	DefaultMaxBedrooms  = 10
	DefaultMinBathrooms = 1
	DefaultMaxBathrooms = 12
	DefaultMinBalconies = 0
	DefaultMaxBalconies = 4
)

func DefaultBounds() Bounds {
	return Bounds{
		TotalSqft: Range{Min: DefaultMinTotalSqft, Max: DefaultMaxTotalSqft},
		Bedrooms:  Range{Min: DefaultMinBedrooms, Max: DefaultMaxBedrooms},
		Bathrooms: Range{Min: DefaultMinBathrooms, Max: DefaultMaxBathrooms},
		Balconies: Range{Min: DefaultMinBalconies, Max: DefaultMaxBalconies},
	}
}

// Validate rejects inverted intervals and negative minimums.
func (b Bounds) Validate() error {
	for _, f := range b.fields() {
		if f.r.Min < 0 || f.r.Min > f.r.Max {
			return fmt.Errorf("invalid bounds for %s: [%g, %g]", f.name, f.r.Min, f.r.Max)
		}
	}
	return nil
}

type namedRange struct {
	name string
	r    Range
}

func (b Bounds) fields() []namedRange {
	return []namedRange{
		{FieldTotalSqft, b.TotalSqft},
		{FieldBedrooms, b.Bedrooms},
		{FieldBathrooms, b.Bathrooms},
		{FieldBalconies, b.Balconies},
	}
}
