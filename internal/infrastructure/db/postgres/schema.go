package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const accountsEmailKey = "accounts_email_key"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
	id          UUID PRIMARY KEY,
	name        TEXT        NOT NULL,
	email       TEXT        NOT NULL,
	password    TEXT        NOT NULL,
	role        TEXT        NOT NULL CHECK (role IN ('customer','admin','manager','worker')),
	is_verified BOOLEAN     NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT accounts_email_key UNIQUE (email)
);`,
	`CREATE INDEX IF NOT EXISTS accounts_email_role_idx ON accounts (email, role);`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
	id         UUID PRIMARY KEY,
	name       TEXT        NOT NULL,
	email      TEXT        NOT NULL,
	message    TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`,
}

// EnsureSchema creates the service tables if they do not exist. Safe to run on every boot.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
