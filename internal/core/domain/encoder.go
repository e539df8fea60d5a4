package domain

import "math"

// FeatureVector is the dense model input, positionally aligned to a ColumnSchema.
type FeatureVector []float64

// Encode turns a query into the feature vector the model expects.
// Exactly one location slot is set to 1 and the numeric slots carry the raw query values.
func Encode(schema *ColumnSchema, q PropertyQuery, bounds Bounds) (FeatureVector, error) {
	locIdx, err := schema.IndexOf(q.Location)
	if err != nil || schema.RoleAt(locIdx) != RoleLocation {
		return nil, &UnknownLocationError{Location: q.Location}
	}

	numeric := []struct {
		field  string
		column string
		value  float64
		bound  Range
	}{
		{FieldTotalSqft, ColumnTotalSqft, q.TotalSqft, bounds.TotalSqft},
		{FieldBathrooms, ColumnBath, float64(q.Bathrooms), bounds.Bathrooms},
		{FieldBedrooms, ColumnBHK, float64(q.Bedrooms), bounds.Bedrooms},
		{FieldBalconies, ColumnBalcony, float64(q.Balconies), bounds.Balconies},
	}

	for _, n := range numeric {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) || !n.bound.Contains(n.value) {
			return nil, &OutOfRangeError{Field: n.field, Value: n.value, Min: n.bound.Min, Max: n.bound.Max}
		}
	}

	vector := make(FeatureVector, schema.Len())
	vector[locIdx] = 1

	for _, n := range numeric {
		idx, err := schema.IndexOf(n.column)
		if err != nil {
			// NewColumnSchema guarantees the reserved columns exist.
			return nil, err
		}
		vector[idx] = n.value
	}

	return vector, nil
}
