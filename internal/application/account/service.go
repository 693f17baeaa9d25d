package account

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

const defaultMinPasswordLength = 6

type Service struct {
	accounts AccountRepo
	contacts ContactRepo
	mailer   Mailer
	hasher   PasswordHasher
	pub      EventPublisher
	google   GoogleIdentityDecoder

	minPasswordLength int
	now               func() time.Time
	audit             AuditFunc
}

type Config struct {
	MinPasswordLength int
}

func NewService(
	accounts AccountRepo,
	contacts ContactRepo,
	mailer Mailer,
	hasher PasswordHasher,
	pub EventPublisher,
	google GoogleIdentityDecoder,
	cfg Config,
) *Service {
	minLen := cfg.MinPasswordLength
	if minLen <= 0 {
		minLen = defaultMinPasswordLength
	}
	if pub == nil {
		pub = noopPublisher{}
	}
	return &Service{
		accounts: accounts,
		contacts: contacts,
		mailer:   mailer,
		hasher:   hasher,
		pub:      pub,
		google:   google,

		minPasswordLength: minLen,
		now:               time.Now,
		audit:             func(context.Context, string, map[string]string) {},
	}
}

// AuditFunc receives business events such as account.registered and account.login_rejected.
type AuditFunc func(ctx context.Context, action string, fields map[string]string)

func (s *Service) WithAudit(fn AuditFunc) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// WithClock overrides the timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) publish(ctx context.Context, event string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("event", event).Msg("event publish failed")
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishAccountRegistered(context.Context, AccountRegisteredEvent) error {
	return nil
}
func (noopPublisher) PublishAccountVerified(context.Context, AccountVerifiedEvent) error { return nil }
func (noopPublisher) PublishContactSubmitted(context.Context, ContactSubmittedEvent) error {
	return nil
}
