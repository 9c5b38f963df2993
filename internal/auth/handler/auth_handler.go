package handler

import (
	"errors"
	"log"

	"github.com/certportal/auth-service/internal/auth/dto"
	"github.com/certportal/auth-service/internal/auth/service"
	autherror "github.com/certportal/auth-service/internal/errors"
	"github.com/certportal/auth-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	devMode      bool
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator, devMode bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		devMode:      devMode,
	}
}

// respondError serializes domain errors into the uniform envelope. Anything
// that is not a domain error becomes a generic 500 with details suppressed
// outside development.
func (h *AuthHandler) respondError(c *fiber.Ctx, err error) error {
	var domainErr *autherror.Error
	if errors.As(err, &domainErr) {
		return c.Status(domainErr.Status).JSON(fiber.Map{
			"success": false,
			"message": domainErr.Message,
			"code":    domainErr.Code,
		})
	}

	log.Printf("error: unhandled: %v", err)
	message := "internal server error"
	if h.devMode {
		message = err.Error()
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"code":    "VALIDATION_FAILED",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	response, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *AuthHandler) VerifyMfa(c *fiber.Ctx) error {
	var input dto.MfaVerifyInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	response, err := h.userService.VerifyMfa(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	output, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(output)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	output, err := h.userService.Refresh(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(output)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	message := h.userService.ForgotPassword(c.Context(), input.Email)

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: message})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	if err := h.userService.ResetPassword(c.Context(), input); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: constant.PasswordResetMessage})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	if err := h.userService.ChangePassword(c.Context(), accountIDFromLocals(c), input); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: constant.PasswordChangedMessage})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.Me(c.Context(), accountIDFromLocals(c))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *AuthHandler) SetupMfa(c *fiber.Ctx) error {
	output, err := h.userService.SetupMfa(c.Context(), accountIDFromLocals(c))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(output)
}

func (h *AuthHandler) EnableMfa(c *fiber.Ctx) error {
	var input dto.MfaEnableInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid input")
	}
	if err := input.Validate(); err != nil {
		return h.respondError(c, err)
	}

	if err := h.userService.EnableMfa(c.Context(), accountIDFromLocals(c), input.Code); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: constant.MfaEnabledMessage})
}

func (h *AuthHandler) DisableMfa(c *fiber.Ctx) error {
	if err := h.userService.DisableMfa(c.Context(), accountIDFromLocals(c)); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: constant.MfaDisabledMessage})
}

func (h *AuthHandler) UnlockAccount(c *fiber.Ctx) error {
	if err := h.userService.Unlock(c.Context(), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: constant.AccountUnlockedMessage})
}
