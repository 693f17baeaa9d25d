package middleware

import (
	"net/http"

	"github.com/google/uuid"

	reqctx "github.com/baechuer/real-time-ressys/services/account-service/internal/pkg/context"
)

// RequestID reuses an inbound X-Request-ID or mints one, echoes it on the
// response and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(reqctx.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(reqctx.RequestIDHeader, reqID)

		ctx := reqctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
