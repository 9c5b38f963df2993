package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/auth")

	auth.Post("/login", h.Login)
	auth.Post("/mfa/verify", h.VerifyMfa)
	auth.Post("/register", h.Register)
	auth.Post("/refresh-token", h.Refresh)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	protected := auth.Group("", h.RequireAuth())
	protected.Post("/change-password", h.ChangePassword)
	protected.Get("/me", h.Me)
	protected.Post("/mfa/setup", h.SetupMfa)
	protected.Post("/mfa/enable", h.EnableMfa)
	protected.Post("/mfa/disable", h.DisableMfa)

	// Admin-only endpoints
	admin := auth.Group("/admin", h.RequireAuth(), h.RequireRole("admin"))
	admin.Post("/accounts/:id/unlock", h.UnlockAccount)
}
