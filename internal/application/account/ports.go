package account

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

/*
AccountRepo
-----------
Persistence port for accounts. Lookups are exact matches on the normalized email.
Create must map a duplicate email to domain.ErrEmailAlreadyExists, relying on the
store's unique key rather than a prior read.
*/
type AccountRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error)
	// MarkVerified flips is_verified atomically. changed is false when the
	// account was already verified, including by a concurrent caller.
	MarkVerified(ctx context.Context, a domain.Account) (updated domain.Account, changed bool, err error)
}

// ContactRepo appends contact form submissions.
type ContactRepo interface {
	Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error)
}

/*
Mailer
------
Sends one email and blocks until it is delivered or given up on.
Failures are reported in the Delivery, never as an error.
*/
type Email struct {
	SenderName     string
	SenderEmail    string
	RecipientEmail string
	Message        string // empty means a verification email
}

type Delivery struct {
	Sent  bool
	Error string
}

type Mailer interface {
	Deliver(ctx context.Context, e Email) Delivery
}

/*
PasswordHasher
--------------
Plain equality by default; bcrypt when configured.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored string, password string) error // nil if match
}

/*
EventPublisher
--------------
Best-effort fan-out of account lifecycle events. A publish failure is logged
and never fails the workflow that produced it.
*/
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error
	PublishAccountVerified(ctx context.Context, evt AccountVerifiedEvent) error
	PublishContactSubmitted(ctx context.Context, evt ContactSubmittedEvent) error
}

type AccountRegisteredEvent struct {
	AccountID  string
	Email      string
	Role       string
	EmailSent  bool
	OccurredAt time.Time
}

type AccountVerifiedEvent struct {
	AccountID  string
	Email      string
	OccurredAt time.Time
}

type ContactSubmittedEvent struct {
	MessageID  string
	Email      string
	Delivered  bool
	OccurredAt time.Time
}

/*
GoogleIdentityDecoder
---------------------
Reads the display identity out of a Google credential WITHOUT verifying it.
An error means the token carried nothing usable.
*/
type GoogleIdentity struct {
	Email string
	Name  string
}

type GoogleIdentityDecoder interface {
	Decode(token string) (GoogleIdentity, error)
}
