package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeAccountRepo struct {
	mu sync.Mutex

	byEmail map[string]domain.Account

	// skipPrecheck makes FindByEmail miss so Create's unique check is the only guard.
	skipPrecheck bool

	findErr     error
	createErr   error
	markErr     error
	markCalls   int
	createCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: map[string]domain.Account{}}
}

func (f *fakeAccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.Account{}, f.findErr
	}
	a, ok := f.byEmail[email]
	if !ok || f.skipPrecheck {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.Account{}, f.findErr
	}
	a, ok := f.byEmail[email]
	if !ok || a.Role != role {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (f *fakeAccountRepo) MarkVerified(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.markCalls++
	if f.markErr != nil {
		return domain.Account{}, false, f.markErr
	}
	cur, ok := f.byEmail[a.Email]
	if !ok {
		return domain.Account{}, false, domain.ErrUserNotFound()
	}
	if cur.IsVerified {
		return cur, false, nil
	}
	cur.IsVerified = true
	f.byEmail[a.Email] = cur
	return cur, true, nil
}

func (f *fakeAccountRepo) get(email string) (domain.Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byEmail[email]
	return a, ok
}

type fakeContactRepo struct {
	mu      sync.Mutex
	saved   []domain.ContactMessage
	saveErr error
}

func (f *fakeContactRepo) Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return domain.ContactMessage{}, f.saveErr
	}
	f.saved = append(f.saved, m)
	return m, nil
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []Email
	result Delivery
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{result: Delivery{Sent: true}}
}

func (f *fakeMailer) Deliver(ctx context.Context, e Email) Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return f.result
}

// plainHasher mirrors the default plaintext comparison.
type plainHasher struct {
	hashErr error
}

func (h plainHasher) Hash(pw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return pw, nil
}

func (plainHasher) Compare(stored, pw string) error {
	if stored != pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakePublisher struct {
	mu         sync.Mutex
	registered []AccountRegisteredEvent
	verified   []AccountVerifiedEvent
	contacts   []ContactSubmittedEvent
	err        error
}

func (f *fakePublisher) PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, evt)
	return f.err
}

func (f *fakePublisher) PublishAccountVerified(ctx context.Context, evt AccountVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, evt)
	return f.err
}

func (f *fakePublisher) PublishContactSubmitted(ctx context.Context, evt ContactSubmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, evt)
	return f.err
}

type fakeGoogle struct {
	id  GoogleIdentity
	err error
}

func (f fakeGoogle) Decode(token string) (GoogleIdentity, error) {
	return f.id, f.err
}

type auditEntry struct {
	action string
	fields map[string]string
}

type testDeps struct {
	accounts *fakeAccountRepo
	contacts *fakeContactRepo
	mailer   *fakeMailer
	pub      *fakePublisher
	audits   *[]auditEntry
}

func newSvcForTest(t *testing.T) (*Service, testDeps) {
	t.Helper()

	d := testDeps{
		accounts: newFakeAccountRepo(),
		contacts: &fakeContactRepo{},
		mailer:   newFakeMailer(),
		pub:      &fakePublisher{},
		audits:   &[]auditEntry{},
	}
	var mu sync.Mutex
	svc := NewService(d.accounts, d.contacts, d.mailer, plainHasher{}, d.pub, nil, Config{}).
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }).
		WithAudit(func(_ context.Context, action string, fields map[string]string) {
			mu.Lock()
			defer mu.Unlock()
			*d.audits = append(*d.audits, auditEntry{action: action, fields: fields})
		})
	return svc, d
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}

func seedAccount(t *testing.T, repo *fakeAccountRepo, a domain.Account) {
	t.Helper()
	if _, err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
