package constant

const (
	DefaultTokenType = "Bearer"
	DefaultRole      = "candidate"

	// MaxFailedLoginAttempts is the lockout threshold; the attempt that reaches
	// it sets the locked flag in the same update.
	MaxFailedLoginAttempts = 5

	MfaCodeLength = 6

	ForgotPasswordMessage  = "If an account with that email exists, a password reset link has been sent."
	PasswordResetMessage   = "Your password has been reset. You can now log in with your new password."
	PasswordChangedMessage = "Your password has been changed."
	MfaEnabledMessage      = "Multi-factor authentication has been enabled."
	MfaDisabledMessage     = "Multi-factor authentication has been disabled."
	AccountUnlockedMessage = "Account has been unlocked."
)
