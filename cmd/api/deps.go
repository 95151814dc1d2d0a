package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/investment"
	"fintrack/internal/domain/report"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/domain/user"
	"fintrack/internal/infrastructure/postgres"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	InvestmentHandler  *httphandlers.InvestmentHandler
	ReportHandler      *httphandlers.ReportHandler
	HealthHandler      *httphandlers.HealthHandler

	// Authenticator backs the auth middleware.
	Authenticator middleware.Authenticator

	// RateLimiter is nil when rate limiting is disabled.
	RateLimiter *middleware.RateLimiter
}

// NewDependencies connects to the database, brings the schema up to date
// and wires every service and handler.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	connStr := cfg.Database.ConnectionString()

	if err := postgres.RunMigrations(connStr); err != nil {
		return nil, err
	}
	slog.Info("database schema up to date")

	db, err := postgres.New(connStr, postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	slog.Info("connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// "Today" is the calendar date in the reporting timezone.
	loc := cfg.Report.Location
	now := func() time.Time { return time.Now().In(loc) }

	// Initialize auth components
	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        cfg.JWT.Issuer,
	})
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Initialize domain services
	categoryService := category.NewService(categoryRepo)
	userService := user.NewService(userRepo, categoryService, tokens, hasher)
	transactionService := transaction.NewService(transactionRepo, categoryService, now)
	investmentService := investment.NewService(investmentRepo)
	reportService := report.NewService(reportRepo, now)

	deps := &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userService, httphandlers.CookieConfig{Secure: cfg.Auth.CookieSecure || cfg.TLS.Enabled, MaxAge: cfg.JWT.AccessTTL}),
		UserHandler:        httphandlers.NewUserHandler(userService),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		InvestmentHandler:  httphandlers.NewInvestmentHandler(investmentService),
		ReportHandler:      httphandlers.NewReportHandler(reportService),
		HealthHandler:      httphandlers.NewHealthHandler(db),
		Authenticator: middleware.AuthenticatorFunc(func(ctx context.Context, token string) (string, error) {
			u, err := userService.Authenticate(ctx, token)
			if err != nil {
				return "", err
			}
			return u.ID, nil
		}),
	}

	if cfg.RateLimit.Enabled {
		deps.RateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		})
	}

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.RateLimiter != nil {
		d.RateLimiter.Stop()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
