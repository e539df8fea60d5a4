package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/artifacts"
	logger_adapter "github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/logger"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/mlclient"
	postgres_adapter "github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/postgres"
	rabbitmq_adapter "github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/rabbitmq"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/adapters/rest"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/configs"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port/usecases_port"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/usecase"
	fluentlogger "github.com/harry16102003/Pune-Real-Estate-Predictor/pkg/fluent_logger"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/pkg/postgres"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/pkg/rabbitmq/rabbitmq_common"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/pkg/rabbitmq/rabbitmq_producer"
	"github.com/jackc/pgx/v5/pgxpool"
)

const startupTimeout = 30 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	dbPool       *pgxpool.Pool
	connManager  *rabbitmq_common.ConnectionManager
	publisher    *rabbitmq_producer.Publisher
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// Predictor is the loaded model pair. Both parts are immutable and shared by all requests.
type Predictor struct {
	Schema *domain.ColumnSchema
	Model  port.ScoringModelPort
}

// NewLoggers builds the stdout logger and, when enabled, the Fluent Bit one.
// The returned client is nil unless Fluent Bit is enabled; the caller closes it.
func NewLoggers(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLevel, ok := logger_adapter.ParseLevel(cfg.StdoutLogger.Level)
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    stdoutLevel,
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	if !ok {
		stdoutLogger.Warn("Unknown log level, defaulting to info", port.Fields{"level": cfg.StdoutLogger.Level})
	}
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentLevel, _ := logger_adapter.ParseLevel(cfg.FluentBit.Level)
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, fluentLevel)
		if err != nil {
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	return multiLogger.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
}

// LoadPredictor loads the column schema and then the model that scores vectors built from it.
// A remote model server is used when MODEL_SERVICE_URL is set.
func LoadPredictor(ctx context.Context, cfg configs.ArtifactsConfig, logger port.LoggerPort) (*Predictor, error) {
	var source port.SchemaSourcePort
	source, err := artifacts.NewSchemaFileLoader(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}
	schema, err := source.LoadSchema(contextkeys.ContextWithLogger(ctx, logger))
	if err != nil {
		return nil, err
	}

	var model port.ScoringModelPort
	if cfg.ModelServiceURL != "" {
		client, err := mlclient.NewHTTPScoringClient(cfg.ModelServiceURL, cfg.ModelServiceTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
		}
		model = client
		logger.Info("Using remote scoring model", port.Fields{"url": cfg.ModelServiceURL})
	} else {
		linear, err := artifacts.LoadLinearModel(cfg.ModelPath, schema)
		if err != nil {
			return nil, err
		}
		model = linear
		logger.Info("Linear model loaded", port.Fields{"path": cfg.ModelPath})
	}

	return &Predictor{Schema: schema, Model: model}, nil
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := NewLoggers(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	app := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	predictor, err := LoadPredictor(ctx, appConfig.Artifacts, appLogger)
	if err != nil {
		appLogger.Error("Failed to load model artifacts", err, nil)
		app.closeResources()
		return nil, fmt.Errorf("failed to load model artifacts: %w", err)
	}

	var recorder port.PredictionRecorderPort
	var getPredictionUC usecases_port.GetPredictionUseCase
	if appConfig.AuditEnabled() {
		app.dbPool, err = postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			app.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		repo, err := postgres_adapter.NewPostgresPredictionAdapter(app.dbPool)
		if err == nil {
			err = repo.EnsureSchema(ctx)
		}
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to prepare prediction storage: %w", err)
		}
		recorder = repo
		getPredictionUC = usecase.NewGetPredictionUseCase(repo)
		appLogger.Info("Prediction audit storage enabled", nil)
	}

	var events port.PredictionEventsPort
	if appConfig.EventsEnabled() {
		bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		app.connManager, err = rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, bridge)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			app.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.publisher, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             appConfig.RabbitMQ.PredictionsExchange,
			ExchangeType:             constants.PredictionsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   bridge,
		}, app.connManager)
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to create predictions publisher: %w", err)
		}
		eventsAdapter, err := rabbitmq_adapter.NewPredictionEventsAdapter(app.publisher, constants.RoutingKeyPredictionCreated)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		events = eventsAdapter
		appLogger.Info("Prediction events enabled", port.Fields{"exchange": appConfig.RabbitMQ.PredictionsExchange})
	}

	predictUC, err := usecase.NewPredictPriceUseCase(predictor.Schema, predictor.Model,
		appConfig.Bounds, appConfig.PriceFormat, recorder, events)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create predict price use case: %w", err)
	}
	getLocationsUC := usecase.NewGetLocationsUseCase(predictor.Schema)
	getFormOptionsUC := usecase.NewGetFormOptionsUseCase(getLocationsUC, appConfig.Bounds, appConfig.PriceFormat)
	appLogger.Info("All use cases initialized.", nil)

	apiHandlers := rest.NewPredictionHandler(predictUC, getLocationsUC, getFormOptionsUC, getPredictionUC)
	app.apiServer = rest.NewServer(appConfig.Rest.Port, apiHandlers, appConfig.Rest.CORSAllowedOrigins, baseLogger)

	return app, nil
}

// Run serves until SIGINT/SIGTERM or a server failure, then shuts down.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.closeResources()
	}()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.Port})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		a.logger.Error("Server failed, shutting down", err, nil)
		return err
	}
}

// closeResources releases outgoing connections in reverse order of creation.
func (a *App) closeResources() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing predictions publisher", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	a.logger.Info("Outgoing resources released.", nil)
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
