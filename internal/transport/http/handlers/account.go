package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

type AccountHandler struct {
	svc            *account.Service
	frontendOrigin string
}

// NewAccountHandler serves register, login, verification and the diagnostic lookup.
// frontendOrigin is where the verification pages send the browser afterwards.
func NewAccountHandler(svc *account.Service, frontendOrigin string) *AccountHandler {
	return &AccountHandler{svc: svc, frontendOrigin: frontendOrigin}
}

// Register handles POST /api/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), account.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Msg("register_failed")
		response.WriteErrorAs(w, r, err, "Registration failed")
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", res.Account.ID).
		Str("role", res.Account.Role).
		Bool("email_sent", res.EmailSent).
		Msg("account_registered")

	response.OK(w, dto.ToRegisterResponse(res))
}

// Login handles POST /api/auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Login(r.Context(), account.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Info().Err(err).Msg("login_rejected")
		response.WriteErrorAs(w, r, err, "Login failed")
		return
	}

	logger.WithCtx(r.Context()).Info().Str("account_id", a.ID).Msg("login_ok")
	response.OK(w, dto.ToLoginResponse(a))
}

// Lookup handles GET /api/auth/test-verify/{email}.
// A missing account is a 200 with success=false.
func (h *AccountHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	a, found, err := h.svc.Lookup(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error().Err(err).Msg("lookup_failed")
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.ToLookupResponse(email, a, found))
}
