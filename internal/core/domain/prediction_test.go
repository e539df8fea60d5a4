package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price  float64
		format PriceFormat
		want   string
	}{
		{1206, DefaultPriceFormat(), "₹ 1,206.00 Lakhs"},
		{85.456, DefaultPriceFormat(), "₹ 85.46 Lakhs"},
		{1234567.891, DefaultPriceFormat(), "₹ 1,234,567.89 Lakhs"},
		{0, PriceFormat{}, "0.00"},
		{1500, PriceFormat{Unit: "Lakhs"}, "1,500.00 Lakhs"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price, tt.format))
	}
}

func TestNewPredictionResult(t *testing.T) {
	q := validQuery()
	r := NewPredictionResult(q, 1206, DefaultPriceFormat())

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, q, r.Query)
	assert.Equal(t, 1206.0, r.Price)
	assert.Equal(t, "Lakhs", r.Unit)
	assert.Equal(t, "₹ 1,206.00 Lakhs", r.Formatted)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Baner Road", DisplayName("baner road"))
	assert.Equal(t, "Wakad", DisplayName("wakad"))
}
