package http_handlers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/memory"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/oauth"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/infrastructure/security"
)

const testOrigin = "http://localhost:3000"

type recordingMailer struct {
	mu      sync.Mutex
	sent    []account.Email
	failMsg string
}

func (m *recordingMailer) Deliver(ctx context.Context, e account.Email) account.Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	if m.failMsg != "" {
		return account.Delivery{Sent: false, Error: m.failMsg}
	}
	return account.Delivery{Sent: true}
}

// brokenAccountRepo fails every call like an unreachable database.
type brokenAccountRepo struct{}

var errDown = errors.New("connection refused")

func (brokenAccountRepo) Create(context.Context, domain.Account) (domain.Account, error) {
	return domain.Account{}, domain.ErrDBUnavailable(errDown)
}
func (brokenAccountRepo) FindByEmail(context.Context, string) (domain.Account, error) {
	return domain.Account{}, domain.ErrDBUnavailable(errDown)
}
func (brokenAccountRepo) FindByEmailAndRole(context.Context, string, string) (domain.Account, error) {
	return domain.Account{}, domain.ErrDBUnavailable(errDown)
}
func (brokenAccountRepo) MarkVerified(context.Context, domain.Account) (domain.Account, bool, error) {
	return domain.Account{}, false, domain.ErrDBUnavailable(errDown)
}

type fixture struct {
	svc      *account.Service
	accounts *memory.AccountRepo
	contacts *memory.ContactRepo
	mailer   *recordingMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		accounts: memory.NewAccountRepo(),
		contacts: memory.NewContactRepo(),
		mailer:   &recordingMailer{},
	}
	f.svc = account.NewService(
		f.accounts,
		f.contacts,
		f.mailer,
		security.NewPlainHasher(),
		memory.NewNoopPublisher(),
		oauth.NewGoogleStubDecoder(),
		account.Config{},
	)
	return f
}

func newBrokenService() *account.Service {
	return account.NewService(
		brokenAccountRepo{},
		memory.NewContactRepo(),
		&recordingMailer{},
		security.NewPlainHasher(),
		nil,
		nil,
		account.Config{},
	)
}

func (f *fixture) seed(t *testing.T, a domain.Account) domain.Account {
	t.Helper()
	created, err := f.accounts.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

// errorBody mirrors response.ErrorBody for decoding in tests.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
