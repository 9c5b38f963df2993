package domain

import "time"

// Account is the login credential record. It is never hard-deleted; a
// deactivated account keeps its rows with Active set to false.
type Account struct {
	ID               string
	PersonID         string
	Username         string
	PasswordHash     string
	Active           bool
	LockedOut        bool
	FailedAttempts   int
	LastLockoutAt    *time.Time
	MfaEnabled       bool
	MfaSecret        string
	PendingMfaSecret string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Profile is the person-level record linked to an Account through the portal
// access row. ProfileID is the id of that linking row.
type Profile struct {
	ProfileID string
	PersonID  string
	Email     string
	GivenName string
	Surname   string
	Roles     []string
}

// Registration carries the data for the five-table identity chain created at
// sign-up: identity, person, name, account and portal access rows.
type Registration struct {
	Email        string
	GivenName    string
	Surname      string
	Username     string
	PasswordHash string
	Role         string
}

type RegistrationResult struct {
	AccountID  string
	PersonID   string
	ProfileID  string
	IdentityID string
}
