package dto

import autherror "github.com/certportal/auth-service/internal/errors"

type MfaVerifyInput struct {
	TempToken string `json:"tempToken"`
	Code      string `json:"code"`
}

func (i *MfaVerifyInput) Validate() error {
	if i.TempToken == "" || i.Code == "" {
		return autherror.Validation("tempToken and code are required")
	}
	return nil
}

type MfaEnableInput struct {
	Code string `json:"code"`
}

func (i *MfaEnableInput) Validate() error {
	if i.Code == "" {
		return autherror.Validation("code is required")
	}
	return nil
}

type MfaSetupOutput struct {
	Secret        string `json:"secret"`
	EnrollmentURI string `json:"enrollmentURI"`
}
