package dto

import (
	"strings"

	autherror "github.com/certportal/auth-service/internal/errors"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (i *LoginInput) Validate() error {
	i.Username = strings.TrimSpace(i.Username)
	if i.Username == "" || i.Password == "" {
		return autherror.Validation("username and password are required")
	}
	return nil
}

// LoginResponse is either a full session (tokens + user) or an MFA challenge
// carrying only the temporary token.
type LoginResponse struct {
	MfaRequired  bool        `json:"mfaRequired,omitempty"`
	TempToken    string      `json:"tempToken,omitempty"`
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	TokenType    string      `json:"tokenType,omitempty"`
	ExpiresIn    int         `json:"expiresIn,omitempty"`
	User         *UserOutput `json:"user,omitempty"`
}
