package account

import (
	"context"
	"strings"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type VerifyStatus string

const (
	VerifyVerified        VerifyStatus = "verified"
	VerifyAlreadyVerified VerifyStatus = "already_verified"
)

type VerifyResult struct {
	Status  VerifyStatus
	Account domain.Account
}

// VerifyEmail confirms ownership of email. Repeating it on a verified account
// returns VerifyAlreadyVerified and writes nothing. When clicks race, the
// store decides and only one caller gets VerifyVerified.
func (s *Service) VerifyEmail(ctx context.Context, email string) (VerifyResult, error) {
	if strings.TrimSpace(email) == "" {
		return VerifyResult{}, domain.ErrMissingField("email")
	}
	if !domain.IsValidEmail(email) {
		return VerifyResult{}, domain.ErrInvalidField("email", "format")
	}

	a, err := s.accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return VerifyResult{}, err
	}

	if a.IsVerified {
		return VerifyResult{Status: VerifyAlreadyVerified, Account: a}, nil
	}

	updated, changed, err := s.accounts.MarkVerified(ctx, a)
	if err != nil {
		return VerifyResult{}, err
	}
	// lost the race to another request for the same link
	if !changed {
		return VerifyResult{Status: VerifyAlreadyVerified, Account: updated}, nil
	}

	s.audit(ctx, "account.verified", map[string]string{"account_id": updated.ID})
	s.publish(ctx, "account.verified", func(ctx context.Context) error {
		return s.pub.PublishAccountVerified(ctx, AccountVerifiedEvent{
			AccountID:  updated.ID,
			Email:      updated.Email,
			OccurredAt: s.now().UTC(),
		})
	})

	return VerifyResult{Status: VerifyVerified, Account: updated}, nil
}
