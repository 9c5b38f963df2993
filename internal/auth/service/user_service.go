package service

//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/certportal/auth-service/internal/auth/service Mailer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/certportal/auth-service/config"
	"github.com/certportal/auth-service/internal/auth/domain"
	"github.com/certportal/auth-service/internal/auth/dto"
	autherror "github.com/certportal/auth-service/internal/errors"
	"github.com/certportal/auth-service/pkg/constant"
	"github.com/certportal/auth-service/pkg/hasher"
)

// Mailer delivers out-of-band messages such as password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// UserService orchestrates login, registration, token refresh, password
// management and MFA enrollment on top of the repository and token issuer.
type UserService struct {
	repo         domain.AccountRepository
	tokenService TokenGenerator
	mfa          MfaVerifier
	hasher       hasher.Hasher
	mailer       Mailer
	cfg          *config.Config
}

func NewUserService(repo domain.AccountRepository, tokenService TokenGenerator, mfa MfaVerifier,
	passwordHasher hasher.Hasher, mailer Mailer, cfg *config.Config) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		mfa:          mfa,
		hasher:       passwordHasher,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// Login verifies the password and either issues a full session or, when MFA is
// enabled on the account, an MFA challenge token. An unknown username fails
// with the same generic message as a wrong password.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	account, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	if !account.Active {
		return nil, autherror.ErrAccountInactive
	}
	if account.LockedOut {
		return nil, autherror.ErrAccountLocked
	}

	if !s.hasher.Verify(input.Password, account.PasswordHash) {
		attempts, locked, recordErr := s.repo.RecordFailedLogin(ctx, account.ID, s.cfg.LoginMaxAttempts)
		if recordErr != nil {
			return nil, recordErr
		}
		if locked {
			return nil, autherror.ErrAccountLocked
		}
		return nil, autherror.InvalidCredentialsRemaining(s.cfg.LoginMaxAttempts - attempts)
	}

	if err := s.repo.ResetFailedLogins(ctx, account.ID); err != nil {
		return nil, err
	}

	if account.MfaEnabled {
		tempToken, err := s.tokenService.GenerateMfaToken(account.ID)
		if err != nil {
			return nil, err
		}
		return &dto.LoginResponse{MfaRequired: true, TempToken: tempToken}, nil
	}

	profile, err := s.repo.GetProfileByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(account, profile)
}

// VerifyMfa exchanges a valid MFA challenge token plus a correct TOTP code for
// a full session. A full access token is rejected here; only the mfa_pending
// kind passes verification. MFA failures do not touch the lockout counter.
func (s *UserService) VerifyMfa(ctx context.Context, input dto.MfaVerifyInput) (*dto.LoginResponse, error) {
	claims, err := s.tokenService.VerifyMfaToken(input.TempToken)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, autherror.ErrTokenInvalid
	}

	if !s.mfa.VerifyCode(account.MfaSecret, input.Code) {
		return nil, autherror.ErrInvalidMfaCode
	}

	profile, err := s.repo.GetProfileByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(account, profile)
}

// Register creates the identity, person, name, account and portal access rows
// in a single transaction. It never logs the new user in.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrDuplicateAccount
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.CreateRegistration(ctx, &domain.Registration{
		Email:        input.Email,
		GivenName:    input.GivenName,
		Surname:      input.Surname,
		Username:     strings.ToLower(input.Email),
		PasswordHash: passwordHash,
		Role:         constant.DefaultRole,
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterOutput{
		UserID:    result.AccountID,
		ProfileID: result.ProfileID,
		Email:     input.Email,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. Roles and the
// profile link are re-resolved here so role changes apply without re-login.
// The refresh token itself is not rotated.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.RefreshOutput, error) {
	claims, err := s.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active || account.LockedOut {
		return nil, autherror.ErrTokenInvalid
	}

	profile, err := s.repo.GetProfileByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	accessToken, _, err := s.tokenService.GenerateAccessToken(account.ID, profile.ProfileID, profile.Roles)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshOutput{
		AccessToken: accessToken,
		TokenType:   constant.DefaultTokenType,
		ExpiresIn:   int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// ChangePassword re-verifies the current password before accepting the new
// one. A mismatch is not a brute-force login attempt and leaves the lockout
// counter alone.
func (s *UserService) ChangePassword(ctx context.Context, accountID string, input dto.ChangePasswordInput) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrNotFound
	}

	if !s.hasher.Verify(input.CurrentPassword, account.PasswordHash) {
		return autherror.ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, account.ID, newHash)
}

// ForgotPassword always succeeds with the same message whether or not the
// email is registered. A mail delivery failure is logged, not surfaced, so the
// response cannot be used to probe for accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) string {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("warn: forgot-password lookup for %s: %v", email, err)
		return constant.ForgotPasswordMessage
	}
	if account == nil {
		return constant.ForgotPasswordMessage
	}

	token, err := s.tokenService.GenerateResetToken(account.ID)
	if err != nil {
		log.Printf("warn: failed to generate reset token: %v", err)
		return constant.ForgotPasswordMessage
	}

	if err := s.mailer.SendPasswordReset(ctx, email, token); err != nil {
		log.Printf("warn: failed to send reset email: %v", err)
	}

	return constant.ForgotPasswordMessage
}

// ResetPassword consumes a reset token. Any verification failure collapses to
// a single invalid-or-expired error.
func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	claims, err := s.tokenService.VerifyResetToken(input.Token)
	if err != nil {
		return autherror.ErrResetTokenInvalid
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrResetTokenInvalid
	}

	newHash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, account.ID, newHash)
}

// Me resolves the caller's current profile and roles.
func (s *UserService) Me(ctx context.Context, accountID string) (*dto.UserOutput, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrNotFound
	}

	profile, err := s.repo.GetProfileByAccountID(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return userOutput(account, profile), nil
}

// SetupMfa generates a fresh TOTP secret and stores it as pending. The secret
// only becomes active once EnableMfa sees a valid code for it.
func (s *UserService) SetupMfa(ctx context.Context, accountID string) (*dto.MfaSetupOutput, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrNotFound
	}

	secret, uri, err := s.mfa.GenerateSecret(account.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate MFA secret: %w", err)
	}

	if err := s.repo.SetPendingMfaSecret(ctx, account.ID, secret); err != nil {
		return nil, err
	}

	return &dto.MfaSetupOutput{Secret: secret, EnrollmentURI: uri}, nil
}

func (s *UserService) EnableMfa(ctx context.Context, accountID, code string) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrNotFound
	}
	if account.PendingMfaSecret == "" {
		return autherror.ErrMfaNotConfigured
	}

	if !s.mfa.VerifyCode(account.PendingMfaSecret, code) {
		return autherror.ErrInvalidMfaCode
	}

	return s.repo.EnableMfa(ctx, account.ID, account.PendingMfaSecret)
}

func (s *UserService) DisableMfa(ctx context.Context, accountID string) error {
	return s.repo.DisableMfa(ctx, accountID)
}

// Unlock is the explicit admin action that clears a lockout; a successful
// login never does.
func (s *UserService) Unlock(ctx context.Context, accountID string) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrNotFound
	}
	return s.repo.UnlockAccount(ctx, account.ID)
}

func (s *UserService) issueSession(account *domain.Account, profile *domain.Profile) (*dto.LoginResponse, error) {
	accessToken, refreshToken, _, err := s.tokenService.GenerateTokenPair(account.ID, profile.ProfileID, profile.Roles)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.DefaultTokenType,
		ExpiresIn:    int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		User:         userOutput(account, profile),
	}, nil
}

func userOutput(account *domain.Account, profile *domain.Profile) *dto.UserOutput {
	return &dto.UserOutput{
		UserID:    account.ID,
		Username:  account.Username,
		Email:     profile.Email,
		GivenName: profile.GivenName,
		Surname:   profile.Surname,
		ProfileID: profile.ProfileID,
		Roles:     profile.Roles,
	}
}
