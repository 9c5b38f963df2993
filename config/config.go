package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Env  string
	Port string

	DBURL      string
	DBMaxConns int

	AccessTokenSecret   string
	RefreshTokenSecret  string
	AccessExpiryMin     int
	RefreshExpiryMin    int
	MfaTokenExpiryMin   int
	ResetTokenExpiryMin int

	LoginMaxAttempts int
	BcryptCost       int

	TotpIssuer string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ResetBaseURL string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:                 getEnv("ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DBURL:               mustGetEnv("DB_URL"),
		DBMaxConns:          getEnvAsInt("DB_MAX_CONNS", 10),
		AccessTokenSecret:   mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:  mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:     getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin:    getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		MfaTokenExpiryMin:   getEnvAsInt("MFA_TOKEN_EXPIRY", 5),
		ResetTokenExpiryMin: getEnvAsInt("RESET_TOKEN_EXPIRY", 5),
		LoginMaxAttempts:    getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		BcryptCost:          getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		TotpIssuer:          getEnv("TOTP_ISSUER", "CertPortal"),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		MailFrom:            getEnv("MAIL_FROM", "no-reply@certportal.example"),
		ResetBaseURL:        getEnv("RESET_BASE_URL", "http://localhost:3000/reset-password"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
