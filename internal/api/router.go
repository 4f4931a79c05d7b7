package api

import (
	"net/http"

	"flightplan-service/internal/api/handlers"
	"flightplan-service/internal/platform/logging"
	"flightplan-service/internal/platform/obs"
	"flightplan-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// The writer may be nil, in which case converted plans are only returned to
// the caller, never persisted.
func NewRouter(log logging.Logger, metrics *obs.Collector, writer ports.PlanWriter) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Log:     log,
		Metrics: metrics,
		Writer:  writer,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/validate", routeHandler.Validate)
	mux.HandleFunc("/convert", routeHandler.Convert)

	return requestMiddleware(log, metrics, mux)
}
