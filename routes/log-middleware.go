package routes

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"gitlab.com/BIC_Dev/pokedex-interactions/controllers"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// LoggingMiddleware logs the incoming HTTP request & its duration.
// Request bodies are never logged.
func LoggingMiddleware(basePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get("Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := logging.AddValues(r.Context(), zap.String("request_id", requestID))
			r = r.WithContext(ctx)
			wrapped := wrapResponseWriter(w)

			ctx = logging.AddValues(ctx,
				zap.String("proto", r.Proto),
				zap.String("method", r.Method),
				zap.String("path", r.URL.EscapedPath()),
				zap.String("remote_address", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
			)

			defer func() {
				if err := recover(); err != nil {
					ctx := logging.AddValues(ctx,
						zap.Int("status", http.StatusInternalServerError),
						zap.Duration("duration", time.Since(start)),
						zap.Any("error", err),
						zap.String("trace", string(debug.Stack())),
					)
					logger := logging.Logger(ctx)
					logger.Error("panic_log")

					if !wrapped.WroteHeader() {
						controllers.Error(ctx, wrapped, "panic", fmt.Errorf("%v", err), http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(wrapped, r)

			if r.URL.Path == basePath+"/status" {
				return
			}

			ctx = logging.AddValues(ctx,
				zap.Int("status", wrapped.Status()),
				zap.Int("response_size", wrapped.Size()),
				zap.Duration("duration", time.Since(start)),
			)

			logger := logging.Logger(ctx)
			logger.Info("access_log")
		}

		return http.HandlerFunc(fn)
	}
}
