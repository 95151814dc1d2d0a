package main

import (
	"log/slog"
	"net/http"

	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
	"fintrack/internal/shared/telemetry"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)
	mux.Handle("/metrics", telemetry.MetricsHandler())

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/refresh", deps.AuthHandler.HandleRefresh)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Authenticator)
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(h))
	}

	protect("/api/auth/password", deps.AuthHandler.HandleChangePassword)
	protect("/api/users/me", deps.UserHandler.HandleMe)

	protect("/api/categories", deps.CategoryHandler.HandleCategories)
	protect("/api/categories/", deps.CategoryHandler.HandleCategories)
	protect("/api/categories/{id}", deps.CategoryHandler.HandleCategoryByID)

	protect("/api/transactions", deps.TransactionHandler.HandleTransactions)
	protect("/api/transactions/", deps.TransactionHandler.HandleTransactions)
	protect("/api/transactions/{id}", deps.TransactionHandler.HandleTransactionByID)

	protect("/api/investments", deps.InvestmentHandler.HandleInvestments)
	protect("/api/investments/", deps.InvestmentHandler.HandleInvestments)
	protect("/api/investments/{id}", deps.InvestmentHandler.HandleInvestmentByID)

	protect("/api/reports/summary", deps.ReportHandler.HandleSummary)
	protect("/api/reports/trends", deps.ReportHandler.HandleTrends)

	// Apply global middleware, innermost first
	var handler http.Handler = mux
	if deps.RateLimiter != nil {
		handler = deps.RateLimiter.Middleware(handler)
	}
	handler = middleware.CORS(cfg.Server.AllowedOrigins)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	handler = middleware.Tracing(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.RequireHTTPS(middleware.HSTS(middleware.SecureCookies(handler)))
		slog.Info("TLS security middleware enabled (RequireHTTPS + HSTS + SecureCookies)")
	}

	return handler
}
