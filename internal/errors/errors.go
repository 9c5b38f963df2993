package errors

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error is a domain error carrying the HTTP status and machine-readable code
// the route layer serializes. Domain code never formats HTTP responses itself.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches domain errors by code, so formatted variants (for example the
// remaining-attempts message) still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidCredentials = &Error{Status: fiber.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: "invalid username or password"}
	ErrAccountInactive    = &Error{Status: fiber.StatusForbidden, Code: "ACCOUNT_INACTIVE", Message: "account is inactive"}
	ErrAccountLocked      = &Error{Status: fiber.StatusForbidden, Code: "ACCOUNT_LOCKED", Message: "account is locked due to too many failed login attempts"}
	ErrDuplicateAccount   = &Error{Status: fiber.StatusConflict, Code: "DUPLICATE_ACCOUNT", Message: "an account with this email already exists"}
	ErrInvalidMfaCode     = &Error{Status: fiber.StatusUnauthorized, Code: "INVALID_MFA_CODE", Message: "invalid verification code"}
	ErrMfaNotConfigured   = &Error{Status: fiber.StatusBadRequest, Code: "MFA_NOT_CONFIGURED", Message: "multi-factor authentication has not been set up"}
	ErrTokenExpired       = &Error{Status: fiber.StatusUnauthorized, Code: "TOKEN_EXPIRED", Message: "token has expired"}
	ErrTokenInvalid       = &Error{Status: fiber.StatusUnauthorized, Code: "TOKEN_INVALID", Message: "token is invalid"}
	ErrResetTokenInvalid  = &Error{Status: fiber.StatusBadRequest, Code: "RESET_TOKEN_INVALID", Message: "password reset link is invalid or has expired"}
	ErrNotFound           = &Error{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: "resource not found"}
	ErrForbidden          = &Error{Status: fiber.StatusForbidden, Code: "FORBIDDEN", Message: "insufficient permissions"}
)

// InvalidCredentialsRemaining discloses the remaining attempts before lockout.
// The unknown-username path keeps the generic message; the asymmetry follows
// the portal's existing enumeration policy.
func InvalidCredentialsRemaining(remaining int) *Error {
	return &Error{
		Status:  ErrInvalidCredentials.Status,
		Code:    ErrInvalidCredentials.Code,
		Message: fmt.Sprintf("invalid username or password, %d attempt(s) remaining before lockout", remaining),
	}
}

// Validation wraps a boundary validation failure.
func Validation(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Code: "VALIDATION_FAILED", Message: message}
}
