package handlers

import (
	"encoding/json"
	"net/http"

	"flightplan-service/internal/platform/logging"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		requestLogger(r, nil).Error(r.Context(), "encode response failed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Err(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// requestLogger resolves the request-scoped logger the middleware stored on
// the context, falling back to the given logger, then to a silent one.
func requestLogger(r *http.Request, fallback logging.Logger) logging.Logger {
	if l := logging.LoggerFromContext(r.Context()); l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return logging.Noop()
}
