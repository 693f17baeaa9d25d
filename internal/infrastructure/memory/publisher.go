package memory

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

// NoopPublisher logs events instead of sending them. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishAccountRegistered(ctx context.Context, evt account.AccountRegisteredEvent) error {
	logger.WithCtx(ctx).Debug().Str("account_id", evt.AccountID).Bool("email_sent", evt.EmailSent).
		Msg("[noop-pub] account registered")
	return nil
}

func (p *NoopPublisher) PublishAccountVerified(ctx context.Context, evt account.AccountVerifiedEvent) error {
	logger.WithCtx(ctx).Debug().Str("account_id", evt.AccountID).Msg("[noop-pub] account verified")
	return nil
}

func (p *NoopPublisher) PublishContactSubmitted(ctx context.Context, evt account.ContactSubmittedEvent) error {
	logger.WithCtx(ctx).Debug().Str("message_id", evt.MessageID).Bool("delivered", evt.Delivered).
		Msg("[noop-pub] contact submitted")
	return nil
}

var _ account.EventPublisher = (*NoopPublisher)(nil)
