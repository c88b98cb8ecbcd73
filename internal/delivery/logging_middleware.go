package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with method, path and response status.
func RequestLogger(log *logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Log(logger.LogEntry{
				Level:   "info",
				Message: "request handled",
				Fields: map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
					"status": rec.status,
					"dur":    time.Since(start).String(),
				},
			})
		})
	}
}
