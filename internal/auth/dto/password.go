package dto

import (
	"net/mail"
	"strings"

	autherror "github.com/certportal/auth-service/internal/errors"
)

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

func (i *ForgotPasswordInput) Validate() error {
	i.Email = strings.TrimSpace(strings.ToLower(i.Email))
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return autherror.Validation("a valid email address is required")
	}
	return nil
}

type ResetPasswordInput struct {
	Token              string `json:"token"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

func (i *ResetPasswordInput) Validate() error {
	if i.Token == "" {
		return autherror.Validation("token is required")
	}
	if len(i.NewPassword) < minPasswordLength {
		return autherror.Validation("password must be at least 8 characters")
	}
	if i.NewPassword != i.ConfirmNewPassword {
		return autherror.Validation("passwords do not match")
	}
	return nil
}

type ChangePasswordInput struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

func (i *ChangePasswordInput) Validate() error {
	if i.CurrentPassword == "" {
		return autherror.Validation("currentPassword is required")
	}
	if len(i.NewPassword) < minPasswordLength {
		return autherror.Validation("password must be at least 8 characters")
	}
	if i.NewPassword != i.ConfirmNewPassword {
		return autherror.Validation("passwords do not match")
	}
	return nil
}

type MessageOutput struct {
	Message string `json:"message"`
}
