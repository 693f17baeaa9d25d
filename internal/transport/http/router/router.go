package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
}

type GoogleHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Signup(w http.ResponseWriter, r *http.Request)
}

type ContactHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
}

type Middleware = func(http.Handler) http.Handler

type Deps struct {
	Health  HealthHandler
	Account AccountHandler
	Google  GoogleHandler
	Contact ContactHandler

	// Global middleware, applied outermost first. Nil entries are skipped.
	Middlewares []Middleware

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.Google == nil {
		return nil, fmt.Errorf("nil Google handler")
	}
	if deps.Contact == nil {
		return nil, fmt.Errorf("nil Contact handler")
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	for _, mw := range deps.Middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", deps.Health.Healthz)
		r.Get("/ready", deps.Health.Readyz)

		r.Post("/register", deps.Account.Register)
		r.Post("/contact", deps.Contact.Submit)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.Account.Login)
			r.Get("/verify", deps.Account.VerifyEmail)
			r.Get("/test-verify/{email}", deps.Account.Lookup)

			r.Post("/google", deps.Google.Login)
			r.Post("/google-signup", deps.Google.Signup)
		})
	})

	return r, nil
}

// notFound also answers wrong-method requests so every unknown route gets
// the same JSON body.
func notFound(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusNotFound, dto.NotFoundResponse{
		Success: false,
		Error:   "Route not found",
		Path:    r.URL.RequestURI(),
		Method:  r.Method,
	})
}
