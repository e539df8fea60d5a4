package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/joho/godotenv"
)

type RESTconfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// ArtifactsConfig locates the trained model. ModelServiceURL, when set, wins over ModelPath.
type ArtifactsConfig struct {
	SchemaPath          string
	ModelPath           string
	ModelServiceURL     string
	ModelServiceTimeout time.Duration
}

type DBconfig struct {
	URL string
}

type RabbitMQConfig struct {
	URL                 string
	PredictionsExchange string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Artifacts    ArtifactsConfig
	Bounds       domain.Bounds
	PriceFormat  domain.PriceFormat
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// AuditEnabled reports whether predictions are stored in PostgreSQL.
func (c *AppConfig) AuditEnabled() bool { return c.Database.URL != "" }

// EventsEnabled reports whether prediction events are published to RabbitMQ.
func (c *AppConfig) EventsEnabled() bool { return c.RabbitMQ.URL != "" }

// LoadConfig reads the environment, optionally seeded from a .env file.
// A missing .env file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: no .env file found (path: %v), using process environment\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "price-prediction-service")

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.Artifacts.SchemaPath = getEnvAsString("SCHEMA_PATH", "models/model_columns.json")
	cfg.Artifacts.ModelPath = getEnvAsString("MODEL_PATH", "models/linear_model.json")
	cfg.Artifacts.ModelServiceURL = os.Getenv("MODEL_SERVICE_URL")
	cfg.Artifacts.ModelServiceTimeout = time.Duration(getEnvAsInt("MODEL_SERVICE_TIMEOUT_SEC", 5)) * time.Second
	if cfg.Artifacts.SchemaPath == "" {
		return nil, fmt.Errorf("SCHEMA_PATH environment variable is required")
	}
	if cfg.Artifacts.ModelPath == "" && cfg.Artifacts.ModelServiceURL == "" {
		return nil, fmt.Errorf("either MODEL_PATH or MODEL_SERVICE_URL must be set")
	}

	def := domain.DefaultBounds()
	cfg.Bounds = domain.Bounds{
		TotalSqft: getEnvAsRange("BOUNDS_TOTAL_SQFT", def.TotalSqft),
		Bedrooms:  getEnvAsRange("BOUNDS_BEDROOMS", def.Bedrooms),
		Bathrooms: getEnvAsRange("BOUNDS_BATHROOMS", def.Bathrooms),
		Balconies: getEnvAsRange("BOUNDS_BALCONIES", def.Balconies),
	}
	if err := cfg.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid BOUNDS_* configuration: %w", err)
	}

	defFormat := domain.DefaultPriceFormat()
	cfg.PriceFormat = domain.PriceFormat{
		CurrencySymbol: getEnvAsString("CURRENCY_SYMBOL", defFormat.CurrencySymbol),
		Unit:           getEnvAsString("PRICE_UNIT", defFormat.Unit),
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.PredictionsExchange = getEnvAsString("PREDICTIONS_EXCHANGE", constants.PredictionsExchange)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueFloat, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as float: %v. Using default value: %g\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueFloat
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvAsRange reads <prefix>_MIN and <prefix>_MAX.
func getEnvAsRange(prefix string, defaultValue domain.Range) domain.Range {
	return domain.Range{
		Min: getEnvAsFloat(prefix+"_MIN", defaultValue.Min),
		Max: getEnvAsFloat(prefix+"_MAX", defaultValue.Max),
	}
}
