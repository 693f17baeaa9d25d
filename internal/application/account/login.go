package account

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type LoginInput struct {
	Email    string `validate:"required,account_email"`
	Password string `validate:"required"`
	Role     string `validate:"required,account_role"`
}

// Login resolves the account by (email, role) and checks it.
// Verification is checked before the password, so an unverified account
// reports forbidden even when the password is wrong.
func (s *Service) Login(ctx context.Context, in LoginInput) (domain.Account, error) {
	if err := checkFields(in, "All fields are required: email, password, role", "Invalid email format"); err != nil {
		return domain.Account{}, err
	}

	a, err := s.accounts.FindByEmailAndRole(ctx, domain.NormalizeEmail(in.Email), in.Role)
	if err != nil {
		return domain.Account{}, err
	}

	if !a.IsVerified {
		s.audit(ctx, "account.login_rejected", map[string]string{"account_id": a.ID, "reason": "unverified"})
		return domain.Account{}, domain.ErrEmailNotVerified()
	}

	if err := s.hasher.Compare(a.Password, in.Password); err != nil {
		s.audit(ctx, "account.login_rejected", map[string]string{"account_id": a.ID, "reason": "password"})
		return domain.Account{}, domain.ErrInvalidPassword()
	}

	s.audit(ctx, "account.login", map[string]string{"account_id": a.ID, "role": a.Role})
	return a, nil
}
