package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/logger"
)

const DefaultAccountTTL = 5 * time.Minute

// CachedAccountRepo decorates an account.AccountRepo with a Redis read cache keyed by email.
//   - Read path: Redis -> store fallback -> Redis set
//   - Write path (create, verify): store -> Redis set (best effort); a failed set evicts the key
//
// Misses are never cached, so a fresh registration is visible immediately.
// Redis errors degrade to the store and never fail a request.
type CachedAccountRepo struct {
	inner   account.AccountRepo
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedAccountRepo(inner account.AccountRepo, client *Client, ttl time.Duration) *CachedAccountRepo {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	if ttl <= 0 {
		ttl = DefaultAccountTTL
	}
	return &CachedAccountRepo{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: AccountKeyPrefix,
	}
}

type cachedAccount struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *CachedAccountRepo) key(email string) string {
	return c.keyPref + domain.NormalizeEmail(email)
}

func (c *CachedAccountRepo) get(ctx context.Context, email string) (domain.Account, bool) {
	if c.rdb == nil {
		return domain.Account{}, false
	}
	raw, err := c.rdb.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logger.WithCtx(ctx).Debug().Err(err).Msg("account cache read failed")
		}
		return domain.Account{}, false
	}
	var ca cachedAccount
	if err := json.Unmarshal(raw, &ca); err != nil {
		return domain.Account{}, false
	}
	return domain.Account(ca), true
}

func (c *CachedAccountRepo) set(ctx context.Context, a domain.Account) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(cachedAccount(a))
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(a.Email), raw, c.ttl).Err(); err != nil {
		// A server refusing writes (maxmemory noeviction) still serves the old value.
		logger.WithCtx(ctx).Warn().Err(err).Msg("account cache write failed, evicting")
		c.evict(ctx, a.Email)
	}
}

func (c *CachedAccountRepo) evict(ctx context.Context, email string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(email)).Err(); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("account cache evict failed")
	}
}

// ---------- account.AccountRepo ----------

func (c *CachedAccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	created, err := c.inner.Create(ctx, a)
	if err != nil {
		return domain.Account{}, err
	}
	c.set(ctx, created)
	return created, nil
}

func (c *CachedAccountRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	if a, ok := c.get(ctx, email); ok {
		return a, nil
	}
	a, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	c.set(ctx, a)
	return a, nil
}

func (c *CachedAccountRepo) FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error) {
	if a, ok := c.get(ctx, email); ok {
		if a.Role != role {
			return domain.Account{}, domain.ErrUserNotFound()
		}
		return a, nil
	}
	a, err := c.inner.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return domain.Account{}, err
	}
	c.set(ctx, a)
	return a, nil
}

// MarkVerified evicts before the store write so a failed refresh cannot leave
// the unverified copy behind.
func (c *CachedAccountRepo) MarkVerified(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	c.evict(ctx, a.Email)
	updated, changed, err := c.inner.MarkVerified(ctx, a)
	if err != nil {
		return domain.Account{}, false, err
	}
	c.set(ctx, updated)
	return updated, changed, nil
}

var _ account.AccountRepo = (*CachedAccountRepo)(nil)
