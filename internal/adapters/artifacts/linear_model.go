package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contracts"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

type linearModelDocument struct {
	Intercept    float64            `json:"intercept"`
	Coefficients []float64          `json:"coefficients,omitempty"`
	Weights      map[string]float64 `json:"weights,omitempty"`
}

// LinearModel scores rows as intercept + w·x. Weights are aligned to the column schema
// when the model is loaded, so Score only checks the row width.
type LinearModel struct {
	intercept float64
	weights   []float64
}

func NewLinearModel(intercept float64, weights []float64) *LinearModel {
	w := make([]float64, len(weights))
	copy(w, weights)
	return &LinearModel{intercept: intercept, weights: w}
}

// LoadLinearModel reads a coefficient artifact and aligns it to schema.
// Every failure wraps domain.ErrModelLoad.
func LoadLinearModel(path string, schema *domain.ColumnSchema) (*LinearModel, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: model path is required", domain.ErrModelLoad)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}
	return ParseLinearModel(body, schema)
}

func ParseLinearModel(body []byte, schema *domain.ColumnSchema) (*LinearModel, error) {
	if err := contracts.Validate(contracts.LinearModelV1, body); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}

	var doc linearModelDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}

	if doc.Coefficients != nil {
		if len(doc.Coefficients) != schema.Len() {
			return nil, fmt.Errorf("%w: model has %d coefficients, schema has %d columns",
				domain.ErrModelLoad, len(doc.Coefficients), schema.Len())
		}
		return NewLinearModel(doc.Intercept, doc.Coefficients), nil
	}

	// Name-keyed weights: every key must be a schema column, missing columns weigh 0.
	// Two keys resolving to one column (e.g. "Kothrud" and "kothrud") are rejected.
	weights := make([]float64, schema.Len())
	seen := make(map[int]string, len(doc.Weights))
	for name, w := range doc.Weights {
		idx, err := schema.IndexOf(name)
		if err != nil {
			return nil, fmt.Errorf("%w: weight for %w", domain.ErrModelLoad, err)
		}
		if prev, dup := seen[idx]; dup {
			return nil, fmt.Errorf("%w: weights %q and %q name the same column", domain.ErrModelLoad, prev, name)
		}
		seen[idx] = name
		weights[idx] = w
	}
	return NewLinearModel(doc.Intercept, weights), nil
}

func (m *LinearModel) Score(ctx context.Context, batch [][]float64) ([]float64, error) {
	out := make([]float64, len(batch))
	for i, row := range batch {
		if len(row) != len(m.weights) {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), len(m.weights))
		}
		sum := m.intercept
		for j, v := range row {
			sum += m.weights[j] * v
		}
		out[i] = sum
	}
	return out, nil
}
