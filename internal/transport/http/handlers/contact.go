package http_handlers

import (
	"net/http"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

type ContactHandler struct {
	svc *account.Service
}

func NewContactHandler(svc *account.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit handles POST /api/contact. A delivery failure is a 500 whose error
// is the provider's message; the submission itself stays stored.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	msg, err := h.svc.SubmitContact(r.Context(), account.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Str("message_id", msg.ID).Msg("contact_failed")
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("message_id", msg.ID).Msg("contact_submitted")
	response.OK(w, dto.ContactResponse{Success: true})
}
