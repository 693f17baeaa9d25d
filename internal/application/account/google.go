package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

// Google sign-in is a stub: the token is never verified and nothing is persisted.

var (
	googleLoginFallback  = GoogleIdentity{Email: "user@gmail.com", Name: "Google User"}
	googleSignupFallback = GoogleIdentity{Email: "newuser@gmail.com", Name: "New Google User"}
)

type GoogleResult struct {
	Email string
	Name  string
	Role  string
}

func (s *Service) GoogleLogin(ctx context.Context, token string) (GoogleResult, error) {
	return s.googleIdentity(ctx, token, googleLoginFallback)
}

func (s *Service) GoogleSignup(ctx context.Context, token string) (GoogleResult, error) {
	return s.googleIdentity(ctx, token, googleSignupFallback)
}

func (s *Service) googleIdentity(ctx context.Context, token string, fallback GoogleIdentity) (GoogleResult, error) {
	if strings.TrimSpace(token) == "" {
		return GoogleResult{}, domain.ErrMissingToken("Google token is required")
	}

	id := fallback
	if s.google != nil {
		if decoded, err := s.google.Decode(token); err == nil {
			if decoded.Email != "" {
				id.Email = decoded.Email
			}
			if decoded.Name != "" {
				id.Name = decoded.Name
			}
		} else {
			logger.WithCtx(ctx).Debug().Err(err).Msg("google token not decodable, using stub identity")
		}
	}

	s.audit(ctx, "account.google", map[string]string{"email": id.Email})
	return GoogleResult{Email: id.Email, Name: id.Name, Role: string(domain.RoleCustomer)}, nil
}
