package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Save(ctx context.Context, m domain.ContactMessage) (domain.ContactMessage, error) {
	if m.ID == "" {
		return domain.ContactMessage{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO contact_messages (id, name, email, message)
VALUES ($1,$2,$3,$4)
RETURNING created_at;
`
	if err := r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Email, m.Message).Scan(&m.CreatedAt); err != nil {
		return domain.ContactMessage{}, domain.ErrDBUnavailable(err)
	}
	return m, nil
}
