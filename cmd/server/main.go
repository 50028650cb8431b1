package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mercury-mail.backend/internal/config"
	"mercury-mail.backend/internal/infrastructure/database"
	"mercury-mail.backend/internal/infrastructure/mail"
	"mercury-mail.backend/internal/infrastructure/repositories"
	"mercury-mail.backend/internal/interfaces/http/handlers"
	"mercury-mail.backend/internal/interfaces/http/middleware"
	"mercury-mail.backend/internal/metrics"
	"mercury-mail.backend/internal/usecases"
	"mercury-mail.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runMigrations = database.RunMigrations
	runServer     = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB      = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Auth.AdminSecret == "" {
		logger.Warn(context.Background(), "API_SECRET is not set; admin endpoints are unreachable")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}

	if err := runMigrations(dsn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info(context.Background(), "Migrations applied")

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	aliasRepo := repositories.NewAliasRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	emailRepo := repositories.NewEmailRepository(db)
	sentEmailRepo := repositories.NewSentEmailRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize mail provider
	mailProvider := mail.NewResendClientWithBaseURL(cfg.Mail.ResendAPIKey, cfg.Mail.ResendBaseURL)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, apiKeyRepo, cfg.Auth.AdminSecret)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo)
	userUsecase := usecases.NewUserUsecase(userRepo, aliasRepo, uow)
	emailUsecase := usecases.NewEmailUsecase(emailRepo)
	sendUsecase := usecases.NewSendUsecase(aliasRepo, sentEmailRepo, mailProvider, cfg.Mail.DefaultFrom)
	inboundUsecase := usecases.NewInboundUsecase(emailRepo, aliasRepo, userRepo, cfg.Mail.SharedMailbox)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(userUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	emailHandler := handlers.NewEmailHandler(emailUsecase)
	sendHandler := handlers.NewSendHandler(sendUsecase)
	inboundHandler := handlers.NewInboundHandler(inboundUsecase)

	collector := metrics.NewCollector()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(collector))

	registerRoutes(r, routeDeps{
		healthHandler:  healthHandler,
		userHandler:    userHandler,
		apiKeyHandler:  apiKeyHandler,
		emailHandler:   emailHandler,
		sendHandler:    sendHandler,
		inboundHandler: inboundHandler,
		authMiddleware: middleware.AuthMiddleware(authUsecase),
		metricsHandler: collector.Handler(),
	})

	log.Printf("Mercury Mail backend starting on port %s", cfg.Server.Port)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
