package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The registration chain depends on these tables existing in this order:
// identities -> persons -> person_names -> accounts -> portal_users.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS identities (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS persons (
		id UUID PRIMARY KEY,
		identity_id UUID NOT NULL REFERENCES identities(id),
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS persons_email_lower_idx ON persons (LOWER(email));`,
	`CREATE TABLE IF NOT EXISTS person_names (
		id UUID PRIMARY KEY,
		person_id UUID NOT NULL REFERENCES persons(id),
		given_name TEXT NOT NULL,
		surname TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		person_id UUID NOT NULL REFERENCES persons(id),
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT true,
		locked_out BOOLEAN NOT NULL DEFAULT false,
		failed_attempts INT NOT NULL DEFAULT 0,
		last_lockout_at TIMESTAMPTZ,
		mfa_enabled BOOLEAN NOT NULL DEFAULT false,
		mfa_secret TEXT,
		pending_mfa_secret TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS accounts_username_lower_idx ON accounts (LOWER(username));`,
	`CREATE TABLE IF NOT EXISTS portal_users (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		person_id UUID NOT NULL REFERENCES persons(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS portal_user_roles (
		account_id UUID NOT NULL REFERENCES accounts(id),
		role TEXT NOT NULL,
		PRIMARY KEY (account_id, role)
	);`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent, so running it on boot is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
