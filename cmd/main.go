package main

import (
	"context"
	"log"

	"github.com/certportal/auth-service/config"
	"github.com/certportal/auth-service/db"
	"github.com/certportal/auth-service/internal/auth/handler"
	repo "github.com/certportal/auth-service/internal/auth/repository/postgres"
	"github.com/certportal/auth-service/internal/auth/service"
	"github.com/certportal/auth-service/internal/mail"
	"github.com/certportal/auth-service/pkg/hasher"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open database pool: %v", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	accountRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin, cfg.MfaTokenExpiryMin, cfg.ResetTokenExpiryMin)
	mfaService := service.NewMfaService(cfg.TotpIssuer)
	passwordHasher := hasher.NewBcrypt(cfg.BcryptCost)
	mailer := mail.NewSMTPMailer(cfg)

	userService := service.NewUserService(accountRepo, tokenService, mfaService, passwordHasher, mailer, cfg)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.Env == "development")

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
