// Package observability provides logging and metrics support for the news
// service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for HTTP traffic and entity operations
//   - Logger helpers for request- and article-scoped fields
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("article created")
//
// # Metrics
//
// Initialize metrics once at startup:
//
//	metrics := observability.NewMetrics("news")
//
// Record metrics:
//
//	metrics.RecordHTTPRequest("GET", "/api/articles", 200, elapsed)
//	metrics.RecordEntityOperation("article", "create")
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
