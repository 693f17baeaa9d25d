package http_handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

// Pinger is satisfied by the account stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
	port  string
	now   func() time.Time
}

func NewHealthHandler(store Pinger, port string) *HealthHandler {
	return &HealthHandler{store: store, port: port, now: time.Now}
}

// Healthz handles GET /api/health. It never touches dependencies.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.OK(w, dto.HealthResponse{
		Status:    "OK",
		Message:   "Backend is running",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Port:      h.port,
	})
}

// Readyz handles GET /api/ready
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			response.WriteJSON(w, http.StatusServiceUnavailable, dto.ReadyResponse{
				Status: "unavailable",
				Error:  "database unavailable",
			})
			return
		}
	}
	response.OK(w, dto.ReadyResponse{Status: "ready"})
}
