package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"erp-ledger/internal/logger"
)

func PanicRecovery(next http.Handler) http.Handler {
	log := logger.WithComponent("recovery")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("panic", fmt.Sprint(err)).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error": "Internal server error", "code": "internal"}`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
