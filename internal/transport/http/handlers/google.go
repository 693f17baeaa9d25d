package http_handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

// GoogleHandler serves the Google sign-in stubs. Tokens are not verified.
type GoogleHandler struct {
	svc *account.Service
}

func NewGoogleHandler(svc *account.Service) *GoogleHandler {
	return &GoogleHandler{svc: svc}
}

// Login handles POST /api/auth/google
func (h *GoogleHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.GoogleLogin, "Google authentication failed")
}

// Signup handles POST /api/auth/google-signup
func (h *GoogleHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.svc.GoogleSignup, "Google signup failed")
}

func (h *GoogleHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	flow func(ctx context.Context, token string) (account.GoogleResult, error),
	failMsg string,
) {
	var req dto.GoogleTokenRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := flow(r.Context(), req.Token)
	if err != nil {
		response.WriteErrorAs(w, r, err, failMsg)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("email", res.Email).Msg("google_stub_auth")
	response.OK(w, dto.ToGoogleResponse(res))
}
