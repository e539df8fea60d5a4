package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Rest.Port)
	assert.Equal(t, domain.DefaultBounds(), cfg.Bounds)
	assert.Equal(t, domain.DefaultPriceFormat(), cfg.PriceFormat)
	assert.Equal(t, 5*time.Second, cfg.Artifacts.ModelServiceTimeout)
	assert.False(t, cfg.AuditEnabled())
	assert.False(t, cfg.EventsEnabled())
	assert.Equal(t, []string{"*"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, constants.PredictionsExchange, cfg.RabbitMQ.PredictionsExchange)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOUNDS_BEDROOMS_MAX", "6")
	t.Setenv("BOUNDS_TOTAL_SQFT_MIN", "not-a-number")
	t.Setenv("PRICE_UNIT", "Crores")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.org ,")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/prices")
	t.Setenv("STDOUT_LOG_JSON", "true")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Rest.Port)
	assert.Equal(t, 6.0, cfg.Bounds.Bedrooms.Max)
	assert.Equal(t, float64(domain.DefaultMinTotalSqft), cfg.Bounds.TotalSqft.Min)
	assert.Equal(t, "Crores", cfg.PriceFormat.Unit)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.org"}, cfg.Rest.CORSAllowedOrigins)
	assert.True(t, cfg.AuditEnabled())
	assert.True(t, cfg.StdoutLogger.IsJSON)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=from-dotenv\nMODEL_SERVICE_URL=http://model:8501/score\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("MODEL_SERVICE_URL")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AppName)
	assert.Equal(t, "http://model:8501/score", cfg.Artifacts.ModelServiceURL)
}

func TestLoadConfig_InvalidBounds(t *testing.T) {
	t.Setenv("BOUNDS_BALCONIES_MIN", "5")
	t.Setenv("BOUNDS_BALCONIES_MAX", "2")

	_, err := LoadConfig(missingEnvFile(t))
	assert.Error(t, err)
}

func TestLoadConfig_FluentWithoutHostIsDisabled(t *testing.T) {
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	assert.False(t, cfg.FluentBit.Enabled)
}
