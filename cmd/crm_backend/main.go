package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/vistahomes/real_estate_crm/cmd/docs"
	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/core/services"
	"github.com/vistahomes/real_estate_crm/internal/handlers"
	"github.com/vistahomes/real_estate_crm/internal/middleware"
	"github.com/vistahomes/real_estate_crm/internal/platform/config"
	"github.com/vistahomes/real_estate_crm/internal/platform/metrics"
	"github.com/vistahomes/real_estate_crm/internal/repositories/database/memory"
	"github.com/vistahomes/real_estate_crm/internal/repositories/database/pgsql"
	"github.com/vistahomes/real_estate_crm/internal/utils"
	"github.com/vistahomes/real_estate_crm/pkg/database"
)

// @title Real Estate CRM API
// @version 1.0
// @description Backend API for managing properties, prospects, opportunities, offers and visits.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if err := seedAdminAgent(context.Background(), cfg, repos, logger); err != nil {
		logger.Error("Failed to seed admin agent", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()
	serviceContainer := services.NewServiceContainer(cfg, repos, m)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermem.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories wires the storage backend selected by configuration. With
// PGSQL_URL set it connects a pgx pool and applies migrations; otherwise it
// falls back to the in-memory store.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("Using in-memory store")
		provider := memory.NewRepositoryProvider(memory.NewStore())
		return &provider, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return nil, nil, err
	}

	provider := pgsql.NewRepositoryProvider(dbPool)
	return &provider, dbPool.Close, nil
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedAdminAgent bootstraps the configured admin account when it does not
// exist yet. Without it a fresh deployment has no account that can create
// other agents.
func seedAdminAgent(ctx context.Context, cfg *config.Config, repos *portsrepo.RepositoryProvider, logger *slog.Logger) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	_, err := repos.AgentRepo.FindAgentByEmail(ctx, cfg.SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	admin := domain.Agent{
		Name:         "Administrator",
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(0, time.Now()),
	}
	created, err := repos.AgentRepo.SaveAgent(ctx, admin)
	if err != nil {
		return err
	}

	logger.Info("Seeded admin agent", slog.String("email", created.Email), slog.Int64("agentID", created.AgentID))
	return nil
}
