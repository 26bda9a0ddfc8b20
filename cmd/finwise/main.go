package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finwise/internal/api"
	"finwise/internal/api/handlers"
	"finwise/internal/repository"
	"finwise/internal/service"
	"finwise/pkg/auth"
	"finwise/pkg/config"
	"finwise/pkg/logger"
	"finwise/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finwise service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	notificationRepo := repository.NewNotificationRepository(db, appLogger)

	// Initialize JWT manager and session revocation
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	revoked := auth.NewRevocationStore()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, revoked, appLogger)
	notificationService := service.NewNotificationService(notificationRepo, appLogger)

	allocationPolicy := service.NewAllocationPolicy(cfg.Allocation.SavingsRate, cfg.Allocation.MoneyPrecision)
	goalService := service.NewGoalService(goalRepo, notificationService, allocationPolicy, appLogger)

	exceedPolicy := service.ExceedPolicyByName(cfg.Alerts.ExceedBasis)
	budgetService := service.NewBudgetService(budgetRepo, txRepo, notificationService, exceedPolicy, cfg.Alerts.NotifyTimeout, appLogger)

	txService := service.NewTransactionService(txRepo, goalService, budgetService, appLogger)
	reportService := service.NewReportService(txRepo, appLogger)
	dashboardService := service.NewDashboardService(userRepo, txRepo, appLogger)
	adminService := service.NewAdminService(userRepo, txRepo, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:          handlers.NewAuthHandler(authService, appLogger),
		Transactions:  handlers.NewTransactionHandler(txService, appLogger),
		Goals:         handlers.NewGoalHandler(goalService, appLogger),
		Budgets:       handlers.NewBudgetHandler(budgetService, appLogger),
		Notifications: handlers.NewNotificationHandler(notificationService, appLogger),
		Reports:       handlers.NewReportHandler(reportService, appLogger),
		Dashboard:     handlers.NewDashboardHandler(dashboardService, appLogger),
		Admin:         handlers.NewAdminHandler(adminService, appLogger),
	}, jwtManager, revoked, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
