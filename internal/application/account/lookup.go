package account

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// Lookup is a diagnostic read by email. found is false when no account matches;
// err is only set for store failures.
func (s *Service) Lookup(ctx context.Context, email string) (a domain.Account, found bool, err error) {
	a, err = s.accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.Account{}, false, nil
		}
		return domain.Account{}, false, err
	}
	return a, true, nil
}
