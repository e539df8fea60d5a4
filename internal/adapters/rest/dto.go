package rest

import (
	"time"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

// PredictPriceRequest is the body of POST /api/v1/predictions.
// Pointers tell a missing field apart from a zero value.
type PredictPriceRequest struct {
	Location  *string  `json:"location"`
	TotalSqft *float64 `json:"total_sqft"`
	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *int     `json:"bathrooms"`
	Balconies *int     `json:"balconies"`
}

// missingField returns the first absent field, or "".
func (r PredictPriceRequest) missingField() string {
	switch {
	case r.Location == nil:
		return domain.FieldLocation
	case r.TotalSqft == nil:
		return domain.FieldTotalSqft
	case r.Bedrooms == nil:
		return domain.FieldBedrooms
	case r.Bathrooms == nil:
		return domain.FieldBathrooms
	case r.Balconies == nil:
		return domain.FieldBalconies
	}
	return ""
}

func (r PredictPriceRequest) toDomain() domain.PropertyQuery {
	return domain.PropertyQuery{
		Location:  *r.Location,
		TotalSqft: *r.TotalSqft,
		Bedrooms:  *r.Bedrooms,
		Bathrooms: *r.Bathrooms,
		Balconies: *r.Balconies,
	}
}

type PredictionResponse struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	TotalSqft float64   `json:"total_sqft"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
	Balconies int       `json:"balconies"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	Formatted string    `json:"formatted"`
	CreatedAt time.Time `json:"created_at"`
}

func toPredictionResponse(r *domain.PredictionResult) PredictionResponse {
	return PredictionResponse{
		ID:        r.ID.String(),
		Location:  r.Query.Location,
		TotalSqft: r.Query.TotalSqft,
		Bedrooms:  r.Query.Bedrooms,
		Bathrooms: r.Query.Bathrooms,
		Balconies: r.Query.Balconies,
		Price:     r.Price,
		Unit:      r.Unit,
		Formatted: r.Formatted,
		CreatedAt: r.CreatedAt,
	}
}

type LocationResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}

type LocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

func toLocationResponses(items []domain.LocationItem) []LocationResponse {
	out := make([]LocationResponse, len(items))
	for i, it := range items {
		out[i] = LocationResponse{SystemName: it.SystemName, DisplayName: it.DisplayName}
	}
	return out
}

type RangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FormOptionsResponse struct {
	Locations      []LocationResponse       `json:"locations"`
	Bounds         map[string]RangeResponse `json:"bounds"`
	CurrencySymbol string                   `json:"currency_symbol"`
	Unit           string                   `json:"unit"`
}

func toFormOptionsResponse(o *domain.FormOptions) FormOptionsResponse {
	rr := func(r domain.Range) RangeResponse { return RangeResponse{Min: r.Min, Max: r.Max} }
	return FormOptionsResponse{
		Locations: toLocationResponses(o.Locations),
		Bounds: map[string]RangeResponse{
			domain.FieldTotalSqft: rr(o.Bounds.TotalSqft),
			domain.FieldBedrooms:  rr(o.Bounds.Bedrooms),
			domain.FieldBathrooms: rr(o.Bounds.Bathrooms),
			domain.FieldBalconies: rr(o.Bounds.Balconies),
		},
		CurrencySymbol: o.Format.CurrencySymbol,
		Unit:           o.Format.Unit,
	}
}

// ErrorResponse is the body of every non-2xx answer.
// Kind and Field are set for rejected queries.
type ErrorResponse struct {
	Error string   `json:"error"`
	Kind  string   `json:"kind,omitempty"`
	Field string   `json:"field,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}
