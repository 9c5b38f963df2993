package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/certportal/auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/certportal/auth-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the token_type claim. Verification rejects any kind
// other than the one the caller expects, so an MFA challenge token can never
// stand in for a full access token and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeMfa     = "mfa"
	TokenTypeReset   = "reset"
)

type TokenGenerator interface {
	GenerateAccessToken(accountID, profileID string, roles []string) (string, time.Time, error)
	GenerateTokenPair(accountID, profileID string, roles []string) (access string, refresh string, expiresAt time.Time, err error)
	GenerateMfaToken(accountID string) (string, error)
	GenerateResetToken(accountID string) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
	VerifyMfaToken(tokenString string) (*JWTCustomClaims, error)
	VerifyResetToken(tokenString string) (*JWTCustomClaims, error)
	GetAccessTokenExpiry() time.Duration
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	MfaTokenExpiry     time.Duration
	ResetTokenExpiry   time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	AccountID  string   `json:"account_id"`
	ProfileID  string   `json:"profile_id,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	TokenType  string   `json:"token_type"`
	MfaPending bool     `json:"mfa_pending,omitempty"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes, mfaMinutes, resetMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
		MfaTokenExpiry:     time.Duration(mfaMinutes) * time.Minute,
		ResetTokenExpiry:   time.Duration(resetMinutes) * time.Minute,
	}
}

func (ts *TokenService) GenerateAccessToken(accountID, profileID string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := JWTCustomClaims{
		AccountID: accountID,
		ProfileID: profileID,
		Roles:     roles,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GenerateTokenPair(accountID, profileID string, roles []string) (string, string, time.Time, error) {
	accessToken, expiresAt, err := ts.GenerateAccessToken(accountID, profileID, roles)
	if err != nil {
		return "", "", time.Time{}, err
	}

	now := time.Now()
	refreshClaims := JWTCustomClaims{
		AccountID: accountID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		refreshClaims).SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, expiresAt, nil
}

// GenerateMfaToken issues the short-lived challenge token returned after a
// correct password when MFA is enabled. It carries mfa_pending and no roles.
func (ts *TokenService) GenerateMfaToken(accountID string) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		AccountID:  accountID,
		TokenType:  TokenTypeMfa,
		MfaPending: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.MfaTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
}

// GenerateResetToken issues the single-purpose password reset token. It shares
// the access secret but its token_type keeps it out of the session namespace.
func (ts *TokenService) GenerateResetToken(accountID string) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		AccountID: accountID,
		TokenType: TokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ResetTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
}

func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.AccessTokenSecret, TokenTypeAccess)
}

func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.RefreshTokenSecret, TokenTypeRefresh)
}

func (ts *TokenService) VerifyMfaToken(tokenString string) (*JWTCustomClaims, error) {
	claims, err := ts.verify(tokenString, ts.AccessTokenSecret, TokenTypeMfa)
	if err != nil {
		return nil, err
	}
	if !claims.MfaPending {
		return nil, autherror.ErrTokenInvalid
	}
	return claims, nil
}

func (ts *TokenService) VerifyResetToken(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, ts.AccessTokenSecret, TokenTypeReset)
}

// verify parses and validates a token, distinguishing expiry from every other
// failure so the client can tell "refresh and retry" from "re-login".
func (ts *TokenService) verify(tokenString, secret, wantType string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrTokenInvalid
	}

	if !token.Valid || claims.TokenType != wantType {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}
