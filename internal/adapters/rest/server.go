package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/constants"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
)

// Server is the REST API of the price predictor.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter builds the chi router with middleware and all routes mounted.
// Prediction lookup is only routed when the handler has an audit store.
func NewRouter(handlers *PredictionHandler, allowedOrigins []string, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", constants.TraceIDHeader},
		ExposedHeaders: []string{constants.TraceIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", handlers.Health)

	r.Route(constants.APIPrefix, func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))

		r.Get("/locations", handlers.GetLocations)
		r.Get("/bounds", handlers.GetFormOptions)
		r.Post("/predictions", handlers.PredictPrice)
		if handlers.getPredictionUC != nil {
			r.Get("/predictions/{predictionID}", handlers.GetPrediction)
		}
	})

	return r
}

func NewServer(listenPort string, handlers *PredictionHandler, allowedOrigins []string, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + listenPort,
		Handler:           NewRouter(handlers, allowedOrigins, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start blocks serving HTTP until the server is stopped.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
