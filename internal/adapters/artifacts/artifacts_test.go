package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const legacyColumns = `{"columns":["kothrud","wakad","total_sqft","bath","bhk","balcony"]}`

func TestSchemaFileLoader_Legacy(t *testing.T) {
	loader, err := NewSchemaFileLoader(writeFile(t, "model_columns.json", legacyColumns))
	require.NoError(t, err)

	s, err := loader.LoadSchema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, []string{"kothrud", "wakad"}, s.Locations())
}

func TestSchemaFileLoader_ExplicitRoles(t *testing.T) {
	body := `{"columns":[
		{"name":"Kothrud","role":"location"},
		{"name":"total_sqft","role":"numeric"},
		"bath",
		{"name":"bhk","role":"numeric"},
		{"name":"balcony","role":"numeric"},
		{"name":"Pimple_Saudagar","role":"location"}]}`

	s, err := ParseSchema([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"kothrud", "pimple_saudagar"}, s.Locations())

	idx, err := s.IndexOf("Pimple_Saudagar")
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}

func TestSchemaFileLoader_Failures(t *testing.T) {
	_, err := NewSchemaFileLoader("")
	assert.ErrorIs(t, err, domain.ErrSchemaLoad)

	missing, err := NewSchemaFileLoader(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	_, err = missing.LoadSchema(context.Background())
	assert.ErrorIs(t, err, domain.ErrSchemaLoad)

	for name, body := range map[string]string{
		"not json":        `{"columns":`,
		"missing field":   `{"data_columns":["kothrud","total_sqft","bath","bhk","balcony"]}`,
		"missing numeric": `{"columns":["kothrud","wakad","total_sqft","bath","bhk"]}`,
		"duplicate":       `{"columns":["kothrud","Kothrud","total_sqft","bath","bhk","balcony"]}`,
	} {
		loader, err := NewSchemaFileLoader(writeFile(t, "cols.json", body))
		require.NoError(t, err)
		_, err = loader.LoadSchema(context.Background())
		assert.ErrorIs(t, err, domain.ErrSchemaLoad, name)
	}
}

func mustLegacySchema(t *testing.T) *domain.ColumnSchema {
	t.Helper()
	s, err := ParseSchema([]byte(legacyColumns))
	require.NoError(t, err)
	return s
}

func TestLinearModel_Coefficients(t *testing.T) {
	s := mustLegacySchema(t)
	path := writeFile(t, "model.json", `{"intercept":10,"coefficients":[5,7,0.05,1,2,0.5]}`)

	m, err := LoadLinearModel(path, s)
	require.NoError(t, err)

	scores, err := m.Score(context.Background(), [][]float64{{0, 1, 1200, 2, 2, 1}})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 10+7+60+2+4+0.5, scores[0], 1e-9)
}

func TestLinearModel_Weights(t *testing.T) {
	s := mustLegacySchema(t)

	m, err := ParseLinearModel([]byte(`{"intercept":1,"weights":{"Wakad":3,"total_sqft":0.1}}`), s)
	require.NoError(t, err)

	scores, err := m.Score(context.Background(), [][]float64{{0, 1, 1000, 2, 2, 1}, {1, 0, 500, 1, 1, 0}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{104, 51}, scores, 1e-9)
}

func TestLinearModel_Failures(t *testing.T) {
	s := mustLegacySchema(t)

	_, err := LoadLinearModel("", s)
	assert.ErrorIs(t, err, domain.ErrModelLoad)

	_, err = LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"), s)
	assert.ErrorIs(t, err, domain.ErrModelLoad)

	_, err = ParseLinearModel([]byte(`{"intercept":1,"coefficients":[1,2,3]}`), s)
	assert.ErrorIs(t, err, domain.ErrModelLoad)

	_, err = ParseLinearModel([]byte(`{"intercept":1,"weights":{"baner":1}}`), s)
	assert.ErrorIs(t, err, domain.ErrModelLoad)

	_, err = ParseLinearModel([]byte(`{"coefficients":[1,2,3,4,5,6]}`), s)
	assert.ErrorIs(t, err, domain.ErrModelLoad)

	for i := 0; i < 20; i++ {
		_, err = ParseLinearModel([]byte(`{"intercept":0,"weights":{"Kothrud":1,"kothrud":2}}`), s)
		assert.ErrorIs(t, err, domain.ErrModelLoad)
	}

	m := NewLinearModel(0, []float64{1, 2})
	_, err = m.Score(context.Background(), [][]float64{{1, 2, 3}})
	assert.Error(t, err)
}
