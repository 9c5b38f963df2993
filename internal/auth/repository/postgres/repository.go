package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/certportal/auth-service/internal/auth/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

var _ domain.AccountRepository = (*PostgresRepository)(nil)

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `
	a.id, a.person_id, a.username, a.password_hash, a.active, a.locked_out,
	a.failed_attempts, a.last_lockout_at, a.mfa_enabled,
	COALESCE(a.mfa_secret, ''), COALESCE(a.pending_mfa_secret, ''),
	a.created_at, a.updated_at`

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT` + accountColumns + `
		FROM accounts a
		WHERE LOWER(a.username) = LOWER($1)
		LIMIT 1;
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT` + accountColumns + `
		FROM accounts a
		JOIN persons p ON p.id = a.person_id
		WHERE LOWER(p.email) = LOWER($1)
		LIMIT 1;
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT` + accountColumns + `
		FROM accounts a
		WHERE a.id = $1
		LIMIT 1;
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.PersonID, &account.Username, &account.PasswordHash,
		&account.Active, &account.LockedOut, &account.FailedAttempts, &account.LastLockoutAt,
		&account.MfaEnabled, &account.MfaSecret, &account.PendingMfaSecret,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

func (r *PostgresRepository) GetProfileByAccountID(ctx context.Context, accountID string) (*domain.Profile, error) {
	query := `
		SELECT pu.id, p.id, p.email, pn.given_name, pn.surname
		FROM portal_users pu
		JOIN persons p ON p.id = pu.person_id
		JOIN person_names pn ON pn.person_id = p.id
		WHERE pu.account_id = $1
		LIMIT 1;
	`
	var profile domain.Profile
	err := r.db.QueryRow(ctx, query, accountID).Scan(&profile.ProfileID, &profile.PersonID,
		&profile.Email, &profile.GivenName, &profile.Surname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no profile linked to account %s", accountID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	roles, err := r.getRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	profile.Roles = roles

	return &profile, nil
}

func (r *PostgresRepository) getRoles(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM portal_user_roles WHERE account_id = $1 ORDER BY role;`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// CreateRegistration inserts the identity chain in strict dependency order
// inside one transaction, so a failing step leaves nothing behind for a later
// login to find.
func (r *PostgresRepository) CreateRegistration(ctx context.Context, reg *domain.Registration) (*domain.RegistrationResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin registration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result := &domain.RegistrationResult{
		IdentityID: uuid.New().String(),
		PersonID:   uuid.New().String(),
		AccountID:  uuid.New().String(),
		ProfileID:  uuid.New().String(),
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO identities (id, created_at) VALUES ($1, now());
	`, result.IdentityID); err != nil {
		return nil, fmt.Errorf("failed to insert identity: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO persons (id, identity_id, email, created_at) VALUES ($1, $2, $3, now());
	`, result.PersonID, result.IdentityID, reg.Email); err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO person_names (id, person_id, given_name, surname, created_at)
		VALUES ($1, $2, $3, $4, now());
	`, uuid.New().String(), result.PersonID, reg.GivenName, reg.Surname); err != nil {
		return nil, fmt.Errorf("failed to insert person name: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, person_id, username, password_hash, active, locked_out,
			failed_attempts, mfa_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, false, 0, false, now(), now());
	`, result.AccountID, result.PersonID, reg.Username, reg.PasswordHash); err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO portal_users (id, account_id, person_id, created_at) VALUES ($1, $2, $3, now());
	`, result.ProfileID, result.AccountID, result.PersonID); err != nil {
		return nil, fmt.Errorf("failed to insert portal user: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO portal_user_roles (account_id, role) VALUES ($1, $2);
	`, result.AccountID, reg.Role); err != nil {
		return nil, fmt.Errorf("failed to insert role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	return result, nil
}

// RecordFailedLogin bumps the counter and flips the locked flag in a single
// statement, so concurrent failures against the same account cannot
// under-count past the threshold.
func (r *PostgresRepository) RecordFailedLogin(ctx context.Context, accountID string, threshold int) (int, bool, error) {
	query := `
		UPDATE accounts
		SET failed_attempts = failed_attempts + 1,
			locked_out = locked_out OR failed_attempts + 1 >= $2,
			last_lockout_at = CASE WHEN failed_attempts + 1 >= $2 THEN now() ELSE last_lockout_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING failed_attempts, locked_out;
	`
	var attempts int
	var locked bool
	if err := r.db.QueryRow(ctx, query, accountID, threshold).Scan(&attempts, &locked); err != nil {
		return 0, false, fmt.Errorf("failed to record login failure: %w", err)
	}

	return attempts, locked, nil
}

// ResetFailedLogins zeroes the counter only. The locked flag stays; clearing
// it takes an explicit unlock.
func (r *PostgresRepository) ResetFailedLogins(ctx context.Context, accountID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts SET failed_attempts = 0, updated_at = now() WHERE id = $1;
	`, accountID)
	return err
}

func (r *PostgresRepository) UnlockAccount(ctx context.Context, accountID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET locked_out = false, failed_attempts = 0, updated_at = now()
		WHERE id = $1;
	`, accountID)
	return err
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, accountID, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1;
	`, accountID, passwordHash)
	return err
}

func (r *PostgresRepository) SetPendingMfaSecret(ctx context.Context, accountID, secret string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts SET pending_mfa_secret = $2, updated_at = now() WHERE id = $1;
	`, accountID, secret)
	return err
}

func (r *PostgresRepository) EnableMfa(ctx context.Context, accountID, secret string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET mfa_enabled = true, mfa_secret = $2, pending_mfa_secret = NULL, updated_at = now()
		WHERE id = $1;
	`, accountID, secret)
	return err
}

func (r *PostgresRepository) DisableMfa(ctx context.Context, accountID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET mfa_enabled = false, mfa_secret = NULL, pending_mfa_secret = NULL, updated_at = now()
		WHERE id = $1;
	`, accountID)
	return err
}
