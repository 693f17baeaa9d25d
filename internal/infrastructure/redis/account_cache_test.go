package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

// countingRepo is an in-memory account store that counts reads.
type countingRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.Account
	reads   int
	findErr error
}

func newCountingRepo() *countingRepo {
	return &countingRepo{byEmail: map[string]domain.Account{}}
}

func (r *countingRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	r.byEmail[a.Email] = a
	return a, nil
}

func (r *countingRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.findErr != nil {
		return domain.Account{}, r.findErr
	}
	a, ok := r.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (r *countingRepo) FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error) {
	a, err := r.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}
	if a.Role != role {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (r *countingRepo) MarkVerified(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.byEmail[a.Email]
	if cur.IsVerified {
		return cur, false, nil
	}
	cur.IsVerified = true
	r.byEmail[a.Email] = cur
	return cur, true, nil
}

func newCache(t *testing.T) (*CachedAccountRepo, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	inner := newCountingRepo()
	return NewCachedAccountRepo(inner, client, time.Minute), inner, mr
}

var alice = domain.Account{
	ID: "acc-1", Name: "Alice", Email: "alice@x.com", Password: "secret1", Role: "customer",
	CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

func TestCachedAccountRepo_CreateWritesThrough(t *testing.T) {
	c, inner, mr := newCache(t)
	ctx := context.Background()

	_, err := c.Create(ctx, alice)
	require.NoError(t, err)
	assert.True(t, mr.Exists("account:email:alice@x.com"))
	assert.Equal(t, time.Minute, mr.TTL("account:email:alice@x.com"))

	got, err := c.FindByEmail(ctx, "Alice@X.com")
	require.NoError(t, err)
	assert.Equal(t, alice, got)
	assert.Equal(t, 0, inner.reads, "served from cache")
}

func TestCachedAccountRepo_MissFillsCache(t *testing.T) {
	c, inner, mr := newCache(t)
	ctx := context.Background()
	_, _ = inner.Create(ctx, alice)

	_, err := c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	_, err = c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.reads)
	assert.True(t, mr.Exists("account:email:alice@x.com"))
}

func TestCachedAccountRepo_NotFoundIsNotCached(t *testing.T) {
	c, inner, mr := newCache(t)
	ctx := context.Background()

	_, err := c.FindByEmail(ctx, "ghost@x.com")
	assert.True(t, domain.Is(err, "user_not_found"))
	assert.False(t, mr.Exists("account:email:ghost@x.com"))

	_, _ = inner.Create(ctx, domain.Account{ID: "g", Email: "ghost@x.com", Role: "worker"})
	got, err := c.FindByEmail(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.Equal(t, "g", got.ID)
}

func TestCachedAccountRepo_RoleMismatchFromCache(t *testing.T) {
	c, _, _ := newCache(t)
	ctx := context.Background()
	_, _ = c.Create(ctx, alice)

	_, err := c.FindByEmailAndRole(ctx, "alice@x.com", "admin")
	assert.True(t, domain.Is(err, "user_not_found"))

	got, err := c.FindByEmailAndRole(ctx, "alice@x.com", "customer")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.ID)
}

func TestCachedAccountRepo_MarkVerifiedRefreshesCache(t *testing.T) {
	c, _, _ := newCache(t)
	ctx := context.Background()
	_, _ = c.Create(ctx, alice)

	_, changed, err := c.MarkVerified(ctx, alice)
	require.NoError(t, err)
	assert.True(t, changed)

	_, changed, err = c.MarkVerified(ctx, alice)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
}

func TestCachedAccountRepo_RedisDownFallsBack(t *testing.T) {
	c, inner, mr := newCache(t)
	ctx := context.Background()
	_, _ = inner.Create(ctx, alice)
	mr.Close()

	got, err := c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.ID)

	_, _, err = c.MarkVerified(ctx, alice)
	require.NoError(t, err)
}

func TestCachedAccountRepo_NilClientPassthrough(t *testing.T) {
	inner := newCountingRepo()
	c := NewCachedAccountRepo(inner, nil, 0)
	ctx := context.Background()

	_, err := c.Create(ctx, alice)
	require.NoError(t, err)
	_, err = c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	_, err = c.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.reads)
}

func TestCachedAccountRepo_InnerErrorPropagates(t *testing.T) {
	c, inner, _ := newCache(t)
	inner.findErr = domain.ErrDBUnavailable(errors.New("down"))

	_, err := c.FindByEmail(context.Background(), "alice@x.com")
	assert.True(t, domain.Is(err, "db_unavailable"))
}

func TestCachedAccountRepo_CreateConflictNotCached(t *testing.T) {
	c, _, mr := newCache(t)
	ctx := context.Background()
	_, _ = c.Create(ctx, alice)
	mr.FlushAll()

	_, err := c.Create(ctx, alice)
	assert.True(t, domain.Is(err, "email_already_exists"))
	assert.False(t, mr.Exists("account:email:alice@x.com"))
}

// rejectSets makes the server refuse SET while reads and deletes still work,
// the way a full instance with maxmemory-policy noeviction behaves.
type rejectSets struct{}

func (rejectSets) DialHook(next goredis.DialHook) goredis.DialHook { return next }

func (rejectSets) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		if cmd.Name() == "set" {
			err := errors.New("OOM command not allowed when used memory > 'maxmemory'")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (rejectSets) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func TestCachedAccountRepo_MarkVerified_WritesRejected_NoStaleEntry(t *testing.T) {
	c, inner, mr := newCache(t)
	ctx := context.Background()
	_, err := c.Create(ctx, alice)
	require.NoError(t, err)
	require.True(t, mr.Exists("account:email:alice@x.com"))

	c.rdb.AddHook(rejectSets{})

	_, changed, err := c.MarkVerified(ctx, alice)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, mr.Exists("account:email:alice@x.com"), "unverified copy must not survive")

	got, err := c.FindByEmailAndRole(ctx, "alice@x.com", "customer")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Equal(t, 1, inner.reads, "read fell through to the store")
}
