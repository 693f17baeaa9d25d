package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "Password123!"

// SeedRepo is the slice of AccountRepo seeding needs; any store driver satisfies it.
type SeedRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

type SeedHasher interface {
	Hash(password string) (string, error)
}

// SeedDemoAccounts creates one verified account per role. Existing emails are
// skipped, so it is restart safe. Returns how many accounts were created.
func SeedDemoAccounts(ctx context.Context, repo SeedRepo, hasher SeedHasher) int {
	seeds := []struct {
		Email string
		Name  string
		Role  domain.Role
	}{
		{Email: "admin@example.com", Name: "Admin User", Role: domain.RoleAdmin},
		{Email: "manager@example.com", Name: "Manager User", Role: domain.RoleManager},
		{Email: "worker@example.com", Name: "Worker User", Role: domain.RoleWorker},
		{Email: "customer@example.com", Name: "Customer User", Role: domain.RoleCustomer},
	}

	created := 0
	for _, s := range seeds {
		stored, err := hasher.Hash(DemoPassword)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("email", s.Email).Msg("seed: hash failed")
			continue
		}

		_, err = repo.Create(ctx, domain.Account{
			ID:         uuid.NewString(),
			Name:       s.Name,
			Email:      s.Email,
			Password:   stored,
			Role:       string(s.Role),
			IsVerified: true,
		})
		if err != nil {
			if !domain.Is(err, "email_already_exists") {
				logger.Logger.Warn().Err(err).Str("email", s.Email).Msg("seed: create failed")
			}
			continue
		}
		created++
	}

	logger.Logger.Info().Int("created", created).Msg("seed: demo accounts ready")
	return created
}
