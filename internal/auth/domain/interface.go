package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/certportal/auth-service/internal/auth/domain AccountRepository

type AccountRepository interface {
	// Lookups return (nil, nil) when no row matches.
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	GetProfileByAccountID(ctx context.Context, accountID string) (*Profile, error)

	// CreateRegistration inserts the full identity chain in one transaction.
	CreateRegistration(ctx context.Context, reg *Registration) (*RegistrationResult, error)

	// RecordFailedLogin increments the failure counter and, in the same
	// statement, sets the locked flag once the counter reaches threshold.
	RecordFailedLogin(ctx context.Context, accountID string, threshold int) (attempts int, locked bool, err error)
	ResetFailedLogins(ctx context.Context, accountID string) error
	UnlockAccount(ctx context.Context, accountID string) error

	UpdatePassword(ctx context.Context, accountID, passwordHash string) error

	SetPendingMfaSecret(ctx context.Context, accountID, secret string) error
	EnableMfa(ctx context.Context, accountID, secret string) error
	DisableMfa(ctx context.Context, accountID string) error
}
