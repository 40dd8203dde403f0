package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"charity-pay.backend/internal/config"
	gatewayclient "charity-pay.backend/internal/infrastructure/gateway"
	"charity-pay.backend/internal/infrastructure/repositories"
	"charity-pay.backend/internal/interfaces/http/handlers"
	"charity-pay.backend/internal/interfaces/http/middleware"
	"charity-pay.backend/internal/usecases"
	"charity-pay.backend/pkg/logger"
	"charity-pay.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error {
		srv := &http.Server{Addr: ":" + port, Handler: r}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	// Repositories
	orgRepo := repositories.NewOrganizationRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Gateway client
	gatewayClient := gatewayclient.NewClient(gatewayclient.Config{
		BaseURL:           cfg.Gateway.BaseURL,
		ClientID:          cfg.Gateway.ClientID,
		ClientSecret:      cfg.Gateway.ClientSecret,
		WebhookSecret:     cfg.Gateway.WebhookSecret,
		TokenSafetyMargin: cfg.Gateway.TokenSafetyMargin,
		Timeout:           cfg.Gateway.Timeout,
	})

	// Usecases
	onboardingUsecase := usecases.NewOnboardingUsecase(orgRepo, docRepo, gatewayClient)
	webhookUsecase := usecases.NewWebhookUsecase(orgRepo, uow)

	// Handlers
	onboardingHandler := handlers.NewOnboardingHandler(onboardingUsecase)
	webhookHandler := handlers.NewWebhookHandler(webhookUsecase, gatewayClient, cfg.Gateway.SignatureHeader)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r, sqlDB)
	registerAPIV1Routes(r, routeDeps{
		onboardingHandler: onboardingHandler,
		webhookHandler:    webhookHandler,
		signatureHeader:   cfg.Gateway.SignatureHeader,
	})

	logger.Info(context.Background(), "CharityPay backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
