package middleware

import (
	"fmt"
	"net/http"

	"qr-attendance/pkg/utils"

	"go.uber.org/zap"
)

// Recover converts panics into the server_error envelope, preserving the
// original message for diagnostics.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					utils.ResponseError(w, http.StatusInternalServerError,
						fmt.Sprintf("server_error: %v", err))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
