package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormat is the display convention of the training data's target column.
type PriceFormat struct {
	CurrencySymbol string
	Unit           string
}

func DefaultPriceFormat() PriceFormat {
	return PriceFormat{CurrencySymbol: "₹", Unit: "Lakhs"}
}

// PredictionResult is a scored query, handed to the front end for display and audit.
type PredictionResult struct {
	ID        uuid.UUID
	Query     PropertyQuery
	Price     float64
	Unit      string
	Formatted string
	CreatedAt time.Time
}

// NewPredictionResult stamps a price with an id, a timestamp and its display form.
func NewPredictionResult(q PropertyQuery, price float64, format PriceFormat) *PredictionResult {
	return &PredictionResult{
		ID:        uuid.New(),
		Query:     q,
		Price:     price,
		Unit:      format.Unit,
		Formatted: FormatPrice(price, format),
		CreatedAt: time.Now().UTC(),
	}
}

// FormatPrice renders a price with two decimals and thousands separators,
// e.g. "₹ 1,206.00 Lakhs".
func FormatPrice(price float64, format PriceFormat) string {
	amount := message.NewPrinter(language.English).Sprintf("%.2f", price)

	parts := make([]string, 0, 3)
	if format.CurrencySymbol != "" {
		parts = append(parts, format.CurrencySymbol)
	}
	parts = append(parts, amount)
	if format.Unit != "" {
		parts = append(parts, format.Unit)
	}
	return strings.Join(parts, " ")
}

// LocationItem pairs the schema name of a location with its display form.
type LocationItem struct {
	SystemName  string
	DisplayName string
}

// DisplayName title-cases a stored location name: "baner road" -> "Baner Road".
func DisplayName(location string) string {
	return cases.Title(language.English).String(location)
}

// FormOptions is what a front end needs to render its input controls.
type FormOptions struct {
	Locations []LocationItem
	Bounds    Bounds
	Format    PriceFormat
}
