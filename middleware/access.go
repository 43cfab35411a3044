package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/flashcard-tracker/flashcard-tracker/logger"
	"github.com/flashcard-tracker/flashcard-tracker/metrics"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Access logs every request and records it in m. Requests are labelled by
// the mux pattern that served them, not the raw path, to keep label
// cardinality bounded.
func Access(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveRequest(r.Method, pattern, strconv.Itoa(rec.status), elapsed)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("latency", elapsed),
				zap.String("user_agent", r.UserAgent()),
			}
			log := logger.FromContext(r.Context())
			if rec.status >= http.StatusInternalServerError {
				log.Error("HTTP request failed", fields...)
			} else {
				log.Info("HTTP request completed", fields...)
			}
		})
	}
}
