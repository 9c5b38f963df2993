package dto

import (
	"net/mail"
	"strings"

	autherror "github.com/certportal/auth-service/internal/errors"
)

const minPasswordLength = 8

type RegisterInput struct {
	GivenName       string `json:"givenName"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (i *RegisterInput) Validate() error {
	i.GivenName = strings.TrimSpace(i.GivenName)
	i.Surname = strings.TrimSpace(i.Surname)
	i.Email = strings.TrimSpace(strings.ToLower(i.Email))

	if i.GivenName == "" || i.Surname == "" {
		return autherror.Validation("given name and surname are required")
	}
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return autherror.Validation("a valid email address is required")
	}
	if len(i.Password) < minPasswordLength {
		return autherror.Validation("password must be at least 8 characters")
	}
	if i.Password != i.ConfirmPassword {
		return autherror.Validation("passwords do not match")
	}
	return nil
}

type RegisterOutput struct {
	UserID    string `json:"userId"`
	ProfileID string `json:"profileId"`
	Email     string `json:"email"`
}
