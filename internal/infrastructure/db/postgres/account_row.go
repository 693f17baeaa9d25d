package postgres

import (
	"database/sql"
	"time"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

const accountColumns = `id, name, email, password, role, is_verified, created_at`

type accountRow struct {
	ID         string
	Name       string
	Email      string
	Password   string
	Role       string
	IsVerified bool
	CreatedAt  time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccountRow(row rowScanner) (accountRow, error) {
	var ar accountRow
	err := row.Scan(
		&ar.ID,
		&ar.Name,
		&ar.Email,
		&ar.Password,
		&ar.Role,
		&ar.IsVerified,
		&ar.CreatedAt,
	)
	return ar, err
}

func toDomainAccount(ar accountRow) domain.Account {
	return domain.Account{
		ID:         ar.ID,
		Name:       ar.Name,
		Email:      ar.Email,
		Password:   ar.Password,
		Role:       ar.Role,
		IsVerified: ar.IsVerified,
		CreatedAt:  ar.CreatedAt,
	}
}

var _ rowScanner = (*sql.Row)(nil)
