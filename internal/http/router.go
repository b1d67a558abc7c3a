package http

import (
	"net/http"

	"api-log-analytics/internal/analyzers"
	"api-log-analytics/internal/shared/loggers"
	"api-log-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, httpLogger loggers.Logger, maxBodyBytes int64) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	analyzeLogsHandler := NewAnalyzeLogsHandler(analysisService, maxBodyBytes)
	analyzeCustomHandler := NewAnalyzeCustomHandler(analysisService, maxBodyBytes)

	// Routes
	router.Post("/analyze", errorHandlingAdapter(analyzeLogsHandler))
	router.Post("/analyze/custom", errorHandlingAdapter(analyzeCustomHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
