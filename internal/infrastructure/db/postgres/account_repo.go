package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

const pgUniqueViolation = "23505"

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// isEmailConflict reports a unique violation on the accounts email key.
func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == accountsEmailKey
}

func (r *AccountRepo) findOne(ctx context.Context, q string, args ...any) (domain.Account, error) {
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrUserNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

// ---------- account.AccountRepo ----------

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE email = $1
LIMIT 1;
`
	return r.findOne(ctx, q, email)
}

func (r *AccountRepo) FindByEmailAndRole(ctx context.Context, email, role string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE email = $1 AND role = $2
LIMIT 1;
`
	return r.findOne(ctx, q, email, role)
}

func (r *AccountRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	a.Email = domain.NormalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if strings.TrimSpace(a.Role) == "" {
		return domain.Account{}, domain.ErrMissingField("role")
	}

	const q = `
INSERT INTO accounts (id, name, email, password, role, is_verified)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + accountColumns + `;
`
	ar, err := scanAccountRow(r.db.QueryRowContext(ctx, q,
		a.ID, a.Name, a.Email, a.Password, a.Role, a.IsVerified,
	))
	if err != nil {
		if isEmailConflict(err) {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAccount(ar), nil
}

// MarkVerified flips is_verified only while it is still false. Concurrent
// callers serialize on the row lock and only the first sees changed=true.
func (r *AccountRepo) MarkVerified(ctx context.Context, a domain.Account) (domain.Account, bool, error) {
	if a.ID == "" {
		return domain.Account{}, false, domain.ErrMissingField("id")
	}

	const flip = `
UPDATE accounts
SET is_verified = TRUE
WHERE id = $1 AND is_verified = FALSE
RETURNING ` + accountColumns + `;
`
	updated, err := r.findOne(ctx, flip, a.ID)
	if err == nil {
		return updated, true, nil
	}
	if !domain.Is(err, "user_not_found") {
		return domain.Account{}, false, err
	}

	// no row flipped: either already verified or gone
	const q = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
LIMIT 1;
`
	cur, err := r.findOne(ctx, q, a.ID)
	if err != nil {
		return domain.Account{}, false, err
	}
	return cur, false, nil
}

// Ping backs the readiness check.
func (r *AccountRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
