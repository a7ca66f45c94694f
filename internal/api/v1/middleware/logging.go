package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"seoinspector/internal/log"
	"seoinspector/internal/util"
)

type ctxKey struct{}

const RequestIDHeader = "X-Request-ID"

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// RequestID returns the id Logging attached to the request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Headers are frozen once the handler writes, so the id goes out first.
		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, requestID))

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		duration := time.Since(start)

		clientIP := util.GetClientIPAddress(r)

		log.Logger.Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("ip", clientIP),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", duration),
		)
	})
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying Flusher.
func (lrw *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return lrw.ResponseWriter
}
