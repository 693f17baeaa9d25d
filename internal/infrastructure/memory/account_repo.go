package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// AccountRepo keeps accounts in a map keyed by normalized email.
// The map key is the uniqueness constraint: Create checks and inserts under one lock.
type AccountRepo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
	now     func() time.Time
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byEmail: make(map[string]domain.Account),
		now:     time.Now,
	}
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = domain.NormalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now().UTC()
	}
	r.byEmail[a.Email] = a
	return a, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (r *AccountRepo) FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error) {
	a, err := r.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	if a.Role != role {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

// MarkVerified checks and sets under one lock, so exactly one caller sees changed.
func (r *AccountRepo) MarkVerified(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byEmail[domain.NormalizeEmail(a.Email)]
	if !ok {
		return domain.Account{}, false, domain.ErrUserNotFound()
	}
	if cur.IsVerified {
		return cur, false, nil
	}
	cur.IsVerified = true
	r.byEmail[cur.Email] = cur
	return cur, true, nil
}

func (r *AccountRepo) Ping(ctx context.Context) error { return nil }
