package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,account_email"`
	Password string `validate:"required"`
	Role     string `validate:"required,account_role"`
}

// RegisterResult reports the created account and, separately, whether the
// verification email went out. A failed email never undoes the registration.
type RegisterResult struct {
	Account    domain.Account
	EmailSent  bool
	EmailError string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	if err := checkFields(in, "All fields are required: name, email, password, role", "Invalid email format"); err != nil {
		return RegisterResult{}, err
	}
	if err := s.checkPassword(in.Password); err != nil {
		return RegisterResult{}, err
	}

	email := domain.NormalizeEmail(in.Email)

	// Fast path only; concurrent registrations are settled by the store's unique key.
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, domain.ErrInternal(err)
	}

	created, err := s.accounts.Create(ctx, domain.Account{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      email,
		Password:   stored,
		Role:       in.Role,
		IsVerified: false,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return RegisterResult{}, err
	}

	d := s.mailer.Deliver(ctx, Email{
		SenderName:     created.Name,
		SenderEmail:    created.Email,
		RecipientEmail: created.Email,
	})
	if !d.Sent {
		logger.WithCtx(ctx).Warn().
			Str("account_id", created.ID).
			Str("email_error", d.Error).
			Msg("verification email not sent")
	}

	s.audit(ctx, "account.registered", map[string]string{
		"account_id": created.ID,
		"role":       created.Role,
	})
	s.publish(ctx, "account.registered", func(ctx context.Context) error {
		return s.pub.PublishAccountRegistered(ctx, AccountRegisteredEvent{
			AccountID:  created.ID,
			Email:      created.Email,
			Role:       created.Role,
			EmailSent:  d.Sent,
			OccurredAt: s.now().UTC(),
		})
	})

	return RegisterResult{Account: created, EmailSent: d.Sent, EmailError: d.Error}, nil
}
