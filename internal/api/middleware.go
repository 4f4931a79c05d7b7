package api

import (
	"net/http"
	"time"

	"flightplan-service/internal/platform/logging"
	"flightplan-service/internal/platform/obs"
)

// statusWriter captures the final HTTP status code and number of bytes written.
// This helps distinguish "handler returned 200" from "client received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestMiddleware tags every request with an ID, stores a request-scoped
// logger on the context, and on the way out records duration and response
// size to both the log and the metrics collector.
func requestMiddleware(log logging.Logger, metrics *obs.Collector, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx, reqLog := logging.WithRequestLogger(r.Context(), log)
		ctx = logging.ContextWithLogger(ctx, reqLog)
		r = r.WithContext(ctx)

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		metrics.ObserveRequest(r.URL.Path, r.Method, status, elapsed.Seconds())
		reqLog.Info(ctx, "request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.RequestURI()),
			logging.Int("status", status),
			logging.Int("bytes", sw.bytes),
			logging.Int("dur_ms", int(elapsed.Milliseconds())),
		)
	})
}
