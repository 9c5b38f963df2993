package dto

import autherror "github.com/certportal/auth-service/internal/errors"

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

func (i *RefreshInput) Validate() error {
	if i.RefreshToken == "" {
		return autherror.Validation("refreshToken is required")
	}
	return nil
}

type RefreshOutput struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}
