package handler

import (
	"strings"

	autherror "github.com/certportal/auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const (
	localsAccountID = "accountID"
	localsProfileID = "profileID"
	localsRoles     = "roles"
)

// RequireAuth accepts only a full access token from the Authorization header.
// An expired token surfaces code TOKEN_EXPIRED so the client interceptor can
// refresh and retry instead of forcing a re-login. MFA challenge and reset
// tokens fail verification here by kind.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return h.respondError(c, autherror.ErrTokenInvalid)
		}

		claims, err := h.tokenService.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return h.respondError(c, err)
		}

		c.Locals(localsAccountID, claims.AccountID)
		c.Locals(localsProfileID, claims.ProfileID)
		c.Locals(localsRoles, claims.Roles)

		return c.Next()
	}
}

// RequireRole guards a route group behind a role carried in the access token.
func (h *AuthHandler) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(localsRoles).([]string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return h.respondError(c, autherror.ErrForbidden)
	}
}

func accountIDFromLocals(c *fiber.Ctx) string {
	id, _ := c.Locals(localsAccountID).(string)
	return id
}
