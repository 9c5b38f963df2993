package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/certportal/auth-service/config"
	"github.com/certportal/auth-service/internal/auth/domain"
	"github.com/certportal/auth-service/internal/auth/dto"
	"github.com/certportal/auth-service/internal/auth/service"
	autherror "github.com/certportal/auth-service/internal/errors"
	"github.com/certportal/auth-service/internal/mocks"
	"github.com/certportal/auth-service/pkg/constant"
	"github.com/certportal/auth-service/pkg/hasher"
	"github.com/golang/mock/gomock"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type serviceFixture struct {
	repo   *mocks.MockAccountRepository
	tokens *mocks.MockTokenGenerator
	mailer *mocks.MockMailer
	hasher hasher.Hasher
	svc    *service.UserService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAccountRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)
	mailer := mocks.NewMockMailer(ctrl)
	passwordHasher := hasher.NewBcrypt(bcrypt.MinCost)
	cfg := &config.Config{LoginMaxAttempts: 5}

	return &serviceFixture{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		hasher: passwordHasher,
		svc:    service.NewUserService(repo, tokens, service.NewMfaService("CertPortal"), passwordHasher, mailer, cfg),
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		ProfileID: "profile-id",
		PersonID:  "person-id",
		Email:     "alice@example.com",
		GivenName: "Alice",
		Surname:   "Nguyen",
		Roles:     []string{"candidate"},
	}
}

func TestUserService_Login_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:           "account-id",
		Username:     "alice",
		PasswordHash: mustHash(t, "password123"),
		Active:       true,
	}
	profile := testProfile()

	input := dto.LoginInput{Username: "alice", Password: "password123"}

	// Mock expectations
	f.repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(account, nil)
	f.repo.EXPECT().ResetFailedLogins(gomock.Any(), account.ID).Return(nil)
	f.repo.EXPECT().GetProfileByAccountID(gomock.Any(), account.ID).Return(profile, nil)
	f.tokens.EXPECT().GenerateTokenPair(account.ID, profile.ProfileID, profile.Roles).
		Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
	f.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	response, err := f.svc.Login(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.False(t, response.MfaRequired)
	assert.Empty(t, response.TempToken)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, constant.DefaultTokenType, response.TokenType)
	assert.Equal(t, 900, response.ExpiresIn)
	require.NotNil(t, response.User)
	assert.Equal(t, "alice", response.User.Username)
	assert.Equal(t, []string{"candidate"}, response.User.Roles)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	f := newServiceFixture(t)

	// Mock expectations
	f.repo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "ghost", Password: "whatever"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	// The unknown-user message must be indistinguishable from a generic
	// wrong-password failure.
	assert.Equal(t, autherror.ErrInvalidCredentials.Message, err.Error())
}

func TestUserService_Login_InactiveAccount(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: false}

	// Mock expectations
	f.repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(account, nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "password123"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrAccountInactive)
}

func TestUserService_Login_LockedAccountRejectedBeforePasswordCheck(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:             "account-id",
		Username:       "alice",
		PasswordHash:   mustHash(t, "password123"),
		Active:         true,
		LockedOut:      true,
		FailedAttempts: 5,
	}

	// Mock expectations: no failure is recorded, the attempt is rejected
	// pre-emptively.
	f.repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(account, nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "password123"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrAccountLocked)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:           "account-id",
		Username:     "alice",
		PasswordHash: mustHash(t, "correct-password"),
		Active:       true,
	}

	// Mock expectations
	f.repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(account, nil)
	f.repo.EXPECT().RecordFailedLogin(gomock.Any(), account.ID, 5).Return(1, false, nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "wrong-password"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "4 attempt(s) remaining")
}

func TestUserService_Login_FifthFailureLocksAccount(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:             "account-id",
		Username:       "alice",
		PasswordHash:   mustHash(t, "correct-password"),
		Active:         true,
		FailedAttempts: 4,
	}

	// Mock expectations
	f.repo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(account, nil)
	f.repo.EXPECT().RecordFailedLogin(gomock.Any(), account.ID, 5).Return(5, true, nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "wrong-password"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrAccountLocked)
}

func TestUserService_Login_MfaEnabled(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:           "account-id",
		Username:     "bob",
		PasswordHash: mustHash(t, "password123"),
		Active:       true,
		MfaEnabled:   true,
		MfaSecret:    "JBSWY3DPEHPK3PXP",
	}

	// Mock expectations: a successful password resets the counter but only an
	// MFA challenge token is issued, never the session pair.
	f.repo.EXPECT().GetByUsername(gomock.Any(), "bob").Return(account, nil)
	f.repo.EXPECT().ResetFailedLogins(gomock.Any(), account.ID).Return(nil)
	f.tokens.EXPECT().GenerateMfaToken(account.ID).Return("temp-token", nil)

	response, err := f.svc.Login(context.Background(), dto.LoginInput{Username: "bob", Password: "password123"})

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.True(t, response.MfaRequired)
	assert.Equal(t, "temp-token", response.TempToken)
	assert.Empty(t, response.AccessToken)
	assert.Empty(t, response.RefreshToken)
	assert.Nil(t, response.User)
}

func TestUserService_VerifyMfa_Success(t *testing.T) {
	f := newServiceFixture(t)

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "CertPortal", AccountName: "bob"})
	require.NoError(t, err)
	code, err := totp.GenerateCode(key.Secret(), time.Now().UTC())
	require.NoError(t, err)

	account := &domain.Account{
		ID:         "account-id",
		Username:   "bob",
		Active:     true,
		MfaEnabled: true,
		MfaSecret:  key.Secret(),
	}
	profile := testProfile()

	// Mock expectations
	f.tokens.EXPECT().VerifyMfaToken("temp-token").
		Return(&service.JWTCustomClaims{AccountID: account.ID, TokenType: service.TokenTypeMfa, MfaPending: true}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().GetProfileByAccountID(gomock.Any(), account.ID).Return(profile, nil)
	f.tokens.EXPECT().GenerateTokenPair(account.ID, profile.ProfileID, profile.Roles).
		Return("access-token", "refresh-token", time.Now().Add(15*time.Minute), nil)
	f.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	response, err := f.svc.VerifyMfa(context.Background(), dto.MfaVerifyInput{TempToken: "temp-token", Code: code})

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
}

func TestUserService_VerifyMfa_WrongCode(t *testing.T) {
	f := newServiceFixture(t)

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "CertPortal", AccountName: "bob"})
	require.NoError(t, err)

	account := &domain.Account{
		ID:         "account-id",
		Username:   "bob",
		Active:     true,
		MfaEnabled: true,
		MfaSecret:  key.Secret(),
	}

	// Mock expectations: no lockout-counter interaction on MFA failure.
	f.tokens.EXPECT().VerifyMfaToken("temp-token").
		Return(&service.JWTCustomClaims{AccountID: account.ID, TokenType: service.TokenTypeMfa, MfaPending: true}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)

	response, err := f.svc.VerifyMfa(context.Background(), dto.MfaVerifyInput{TempToken: "temp-token", Code: "000000"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrInvalidMfaCode)
}

func TestUserService_VerifyMfa_RejectsNonChallengeToken(t *testing.T) {
	f := newServiceFixture(t)

	// A full access token fails MFA-token verification by kind.
	f.tokens.EXPECT().VerifyMfaToken("an-access-token").Return(nil, autherror.ErrTokenInvalid)

	response, err := f.svc.VerifyMfa(context.Background(), dto.MfaVerifyInput{TempToken: "an-access-token", Code: "123456"})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
}

func TestUserService_Register_Success(t *testing.T) {
	f := newServiceFixture(t)

	input := dto.RegisterInput{
		GivenName:       "Alice",
		Surname:         "Nguyen",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	// Mock expectations
	f.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
	f.repo.EXPECT().CreateRegistration(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reg *domain.Registration) (*domain.RegistrationResult, error) {
			assert.Equal(t, "alice@example.com", reg.Email)
			assert.Equal(t, "alice@example.com", reg.Username)
			assert.Equal(t, constant.DefaultRole, reg.Role)
			assert.True(t, f.hasher.Verify("password123", reg.PasswordHash))
			return &domain.RegistrationResult{AccountID: "account-id", ProfileID: "profile-id"}, nil
		})

	output, err := f.svc.Register(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "account-id", output.UserID)
	assert.Equal(t, "profile-id", output.ProfileID)
	assert.Equal(t, "alice@example.com", output.Email)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)

	existing := &domain.Account{ID: "existing-id", Username: "dup@example.com"}

	// Mock expectations: the chain is never started.
	f.repo.EXPECT().GetByEmail(gomock.Any(), "dup@example.com").Return(existing, nil)

	output, err := f.svc.Register(context.Background(), dto.RegisterInput{
		GivenName:       "Dup",
		Surname:         "Licate",
		Email:           "dup@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, autherror.ErrDuplicateAccount)
}

func TestUserService_Register_CreateError(t *testing.T) {
	f := newServiceFixture(t)

	expectedError := errors.New("insert failed")

	// Mock expectations
	f.repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
	f.repo.EXPECT().CreateRegistration(gomock.Any(), gomock.Any()).Return(nil, expectedError)

	output, err := f.svc.Register(context.Background(), dto.RegisterInput{
		GivenName:       "Alice",
		Surname:         "Nguyen",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	assert.Nil(t, output)
	assert.Equal(t, expectedError, err)
}

func TestUserService_Refresh_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true}
	profile := testProfile()
	profile.Roles = []string{"admin", "candidate"} // roles re-resolved at refresh time

	// Mock expectations
	f.tokens.EXPECT().VerifyRefreshToken("refresh-token").
		Return(&service.JWTCustomClaims{AccountID: account.ID, TokenType: service.TokenTypeRefresh}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().GetProfileByAccountID(gomock.Any(), account.ID).Return(profile, nil)
	f.tokens.EXPECT().GenerateAccessToken(account.ID, profile.ProfileID, profile.Roles).
		Return("new-access-token", time.Now().Add(15*time.Minute), nil)
	f.tokens.EXPECT().GetAccessTokenExpiry().Return(15 * time.Minute)

	output, err := f.svc.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "new-access-token", output.AccessToken)
	assert.Equal(t, constant.DefaultTokenType, output.TokenType)
	assert.Equal(t, 900, output.ExpiresIn)
}

func TestUserService_Refresh_ExpiredToken(t *testing.T) {
	f := newServiceFixture(t)

	// Mock expectations
	f.tokens.EXPECT().VerifyRefreshToken("stale-token").Return(nil, autherror.ErrTokenExpired)

	output, err := f.svc.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "stale-token"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestUserService_Refresh_LockedAccount(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true, LockedOut: true}

	// Mock expectations
	f.tokens.EXPECT().VerifyRefreshToken("refresh-token").
		Return(&service.JWTCustomClaims{AccountID: account.ID, TokenType: service.TokenTypeRefresh}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)

	output, err := f.svc.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "refresh-token"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:           "account-id",
		Username:     "alice",
		PasswordHash: mustHash(t, "old-password"),
		Active:       true,
	}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().UpdatePassword(gomock.Any(), account.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newHash string) error {
			assert.True(t, f.hasher.Verify("new-password-1", newHash))
			return nil
		})

	err := f.svc.ChangePassword(context.Background(), account.ID, dto.ChangePasswordInput{
		CurrentPassword:    "old-password",
		NewPassword:        "new-password-1",
		ConfirmNewPassword: "new-password-1",
	})

	assert.NoError(t, err)
}

func TestUserService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{
		ID:           "account-id",
		Username:     "alice",
		PasswordHash: mustHash(t, "old-password"),
		Active:       true,
	}

	// Mock expectations: no RecordFailedLogin call — a change-password
	// mismatch is not a login attempt.
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)

	err := f.svc.ChangePassword(context.Background(), account.ID, dto.ChangePasswordInput{
		CurrentPassword:    "not-the-password",
		NewPassword:        "new-password-1",
		ConfirmNewPassword: "new-password-1",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
}

func TestUserService_ForgotPassword_MessageIsConstant(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice@example.com", Active: true}

	// Mock expectations: existing email triggers the reset flow.
	f.repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(account, nil)
	f.tokens.EXPECT().GenerateResetToken(account.ID).Return("reset-token", nil)
	f.mailer.EXPECT().SendPasswordReset(gomock.Any(), "alice@example.com", "reset-token").Return(nil)

	existing := f.svc.ForgotPassword(context.Background(), "alice@example.com")

	// Unknown email: nothing is generated or sent.
	f.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	missing := f.svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.Equal(t, existing, missing)
	assert.Equal(t, constant.ForgotPasswordMessage, existing)
}

func TestUserService_ForgotPassword_MailFailureIsSwallowed(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice@example.com", Active: true}

	// Mock expectations
	f.repo.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(account, nil)
	f.tokens.EXPECT().GenerateResetToken(account.ID).Return("reset-token", nil)
	f.mailer.EXPECT().SendPasswordReset(gomock.Any(), "alice@example.com", "reset-token").
		Return(errors.New("smtp unreachable"))

	message := f.svc.ForgotPassword(context.Background(), "alice@example.com")

	assert.Equal(t, constant.ForgotPasswordMessage, message)
}

func TestUserService_ResetPassword_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true}

	// Mock expectations
	f.tokens.EXPECT().VerifyResetToken("reset-token").
		Return(&service.JWTCustomClaims{AccountID: account.ID, TokenType: service.TokenTypeReset}, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().UpdatePassword(gomock.Any(), account.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newHash string) error {
			assert.True(t, f.hasher.Verify("brand-new-pass", newHash))
			return nil
		})

	err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token:              "reset-token",
		NewPassword:        "brand-new-pass",
		ConfirmNewPassword: "brand-new-pass",
	})

	assert.NoError(t, err)
}

func TestUserService_ResetPassword_InvalidToken(t *testing.T) {
	f := newServiceFixture(t)

	// Mock expectations: expiry and tampering both collapse to the same
	// client-facing error.
	f.tokens.EXPECT().VerifyResetToken("bad-token").Return(nil, autherror.ErrTokenExpired)

	err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordInput{
		Token:              "bad-token",
		NewPassword:        "brand-new-pass",
		ConfirmNewPassword: "brand-new-pass",
	})

	assert.ErrorIs(t, err, autherror.ErrResetTokenInvalid)
}

func TestUserService_Me_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true}
	profile := testProfile()

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().GetProfileByAccountID(gomock.Any(), account.ID).Return(profile, nil)

	user, err := f.svc.Me(context.Background(), account.ID)

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "profile-id", user.ProfileID)
	assert.Equal(t, []string{"candidate"}, user.Roles)
}

func TestUserService_SetupMfa_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().SetPendingMfaSecret(gomock.Any(), account.ID, gomock.Any()).Return(nil)

	output, err := f.svc.SetupMfa(context.Background(), account.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, output.Secret)
	assert.Contains(t, output.EnrollmentURI, "otpauth://totp/")
}

func TestUserService_EnableMfa_Success(t *testing.T) {
	f := newServiceFixture(t)

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "CertPortal", AccountName: "alice"})
	require.NoError(t, err)
	code, err := totp.GenerateCode(key.Secret(), time.Now().UTC())
	require.NoError(t, err)

	account := &domain.Account{
		ID:               "account-id",
		Username:         "alice",
		Active:           true,
		PendingMfaSecret: key.Secret(),
	}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().EnableMfa(gomock.Any(), account.ID, key.Secret()).Return(nil)

	assert.NoError(t, f.svc.EnableMfa(context.Background(), account.ID, code))
}

func TestUserService_EnableMfa_WithoutSetup(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)

	err := f.svc.EnableMfa(context.Background(), account.ID, "123456")

	assert.ErrorIs(t, err, autherror.ErrMfaNotConfigured)
}

func TestUserService_EnableMfa_WrongCode(t *testing.T) {
	f := newServiceFixture(t)

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "CertPortal", AccountName: "alice"})
	require.NoError(t, err)

	account := &domain.Account{
		ID:               "account-id",
		Username:         "alice",
		Active:           true,
		PendingMfaSecret: key.Secret(),
	}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)

	err = f.svc.EnableMfa(context.Background(), account.ID, "000000")

	assert.ErrorIs(t, err, autherror.ErrInvalidMfaCode)
}

func TestUserService_DisableMfa(t *testing.T) {
	f := newServiceFixture(t)

	// Mock expectations
	f.repo.EXPECT().DisableMfa(gomock.Any(), "account-id").Return(nil)

	assert.NoError(t, f.svc.DisableMfa(context.Background(), "account-id"))
}

func TestUserService_Unlock_Success(t *testing.T) {
	f := newServiceFixture(t)

	account := &domain.Account{ID: "account-id", Username: "alice", Active: true, LockedOut: true}

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), account.ID).Return(account, nil)
	f.repo.EXPECT().UnlockAccount(gomock.Any(), account.ID).Return(nil)

	assert.NoError(t, f.svc.Unlock(context.Background(), account.ID))
}

func TestUserService_Unlock_UnknownAccount(t *testing.T) {
	f := newServiceFixture(t)

	// Mock expectations
	f.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	err := f.svc.Unlock(context.Background(), "missing")

	assert.ErrorIs(t, err, autherror.ErrNotFound)
}
