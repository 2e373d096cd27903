package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"consent-backend/config"
	"consent-backend/controllers"
	"consent-backend/routes"
	"consent-backend/services"
)

func newLogger() *zap.Logger {
	if os.Getenv("GIN_MODE") == "release" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("failed to build logger: %v", err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	logger := newLogger()
	defer logger.Sync()

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	if db == nil {
		logger.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Info("database connected and migrations applied",
		zap.String("driver", config.StorageDriver()))

	// Optional infrastructure
	redisClient := config.ConnectRedis()
	verifyCache := services.NewVerifyCache(redisClient)
	notifier := services.NewWebhookNotifier(os.Getenv("WEBHOOK_URL"), logger)

	// Initialize services
	subjectService := services.NewSubjectService(db)
	domainService := services.NewDomainService(db)
	policyService := services.NewPolicyService(db)
	purposeService := services.NewPurposeService(db)
	auditService := services.NewAuditService(db)
	consentService := services.NewConsentService(
		db, subjectService, domainService, policyService, purposeService,
		auditService, verifyCache, notifier,
	)

	// Initialize controllers
	consentController := controllers.NewConsentController(consentService)
	bannerController := controllers.NewBannerController(purposeService)
	subjectController := controllers.NewSubjectController(subjectService)
	purposeController := controllers.NewPurposeController(purposeService)
	policyController := controllers.NewPolicyController(policyService)
	domainController := controllers.NewDomainController(domainService)
	auditLogController := controllers.NewAuditLogController(auditService)

	// Build router
	router := routes.SetupRouter(
		logger,
		consentController,
		bannerController,
		subjectController,
		purposeController,
		policyController,
		domainController,
		auditLogController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped gracefully")
}
