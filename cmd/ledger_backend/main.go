package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/membership_ledger/internal/cache"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/core/services"
	"github.com/SscSPs/membership_ledger/internal/handlers"
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/SscSPs/membership_ledger/internal/platform/config"
	"github.com/SscSPs/membership_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/membership_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/membership_ledger/internal/utils"
	"github.com/SscSPs/membership_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Membership Ledger API
// @version 1.0
// @description Wallets, transaction journal and obligation ledgers for the membership back office.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	issueToken := flag.String("issue-token", "", "print a signed admin JWT for the given user ID and exit (local development)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *issueToken != "" {
		token, err := utils.GenerateJWT(*issueToken, middleware.RoleAdmin, cfg.JWTSecret, 24*time.Hour, cfg.JWTIssuer)
		if err != nil {
			logger.Error("Failed to issue token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	ctx := context.Background()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	mainWallet, err := services.EnsureMainWallet(ctx, repos.WalletRepo, cfg.SystemUserID, cfg.MainWalletName)
	if err != nil {
		logger.Error("Failed to bootstrap main wallet", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Main wallet ready", slog.String("wallet_id", mainWallet.WalletID))

	// A nil *DashboardCache must not reach the SummaryCache interface.
	var summaryCache services.SummaryCache
	if cfg.RedisAddr != "" {
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer client.Close()
		summaryCache = cache.NewDashboardCache(client, cfg.DashboardCacheTTL)
		logger.Info("Dashboard cache enabled", slog.String("redis_addr", cfg.RedisAddr))
	}

	serviceContainer := services.NewServiceContainer(repos, summaryCache)

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories opens the configured storage driver. For PostgreSQL it also
// applies pending migrations before the pool is handed out.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
