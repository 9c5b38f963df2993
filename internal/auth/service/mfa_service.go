package service

import (
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// MfaVerifier generates shared secrets and validates time-based one-time codes.
type MfaVerifier interface {
	GenerateSecret(accountLabel string) (secret, enrollmentURI string, err error)
	VerifyCode(secret, code string) bool
}

var _ MfaVerifier = (*MfaService)(nil)

type MfaService struct {
	Issuer string
}

func NewMfaService(issuer string) *MfaService {
	return &MfaService{Issuer: issuer}
}

// GenerateSecret produces a fresh TOTP secret and the otpauth:// URI the
// frontend renders as a QR code.
func (m *MfaService) GenerateSecret(accountLabel string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.Issuer,
		AccountName: accountLabel,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// VerifyCode checks a submitted 6-digit code against the shared secret,
// tolerating one time step of clock drift in either direction. Anything that
// is not exactly six digits after whitespace stripping is rejected before any
// TOTP computation.
func (m *MfaService) VerifyCode(secret, code string) bool {
	code = stripWhitespace(code)
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}

	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
