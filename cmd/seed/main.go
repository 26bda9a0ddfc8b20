package main

import (
	"context"
	"log"
	"time"

	"finwise/internal/models"
	"finwise/internal/repository"
	"finwise/pkg/auth"
	"finwise/pkg/config"
	"finwise/pkg/logger"
	"finwise/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds a demo user with goals, budgets and transactions, plus an admin
// account. Safe to run against an empty database only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	now := time.Now()

	adminPassword, err := auth.HashPassword("admin-change-me")
	if err != nil {
		appLogger.Fatal("Failed to hash password", zap.Error(err))
	}
	admin := &models.User{
		ID:        uuid.New(),
		Username:  "admin",
		Email:     "admin@finwise.local",
		Password:  adminPassword,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		appLogger.Fatal("Failed to create admin user", zap.Error(err))
	}

	demoPassword, err := auth.HashPassword("demo-change-me")
	if err != nil {
		appLogger.Fatal("Failed to hash password", zap.Error(err))
	}
	demo := &models.User{
		ID:        uuid.New(),
		Username:  "demo",
		Email:     "demo@finwise.local",
		Password:  demoPassword,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	deadline := now.AddDate(0, 6, 0)
	goals := []*models.Goal{
		{
			ID:            uuid.New(),
			UserID:        demo.ID,
			Title:         "Emergency fund",
			TargetAmount:  decimal.NewFromInt(3000),
			CurrentAmount: decimal.Zero,
			AutoAllocate:  true,
			Deadline:      &deadline,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            uuid.New(),
			UserID:        demo.ID,
			Title:         "Vacation",
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.Zero,
			AutoAllocate:  true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	for _, goal := range goals {
		if err := goalRepo.Create(ctx, goal); err != nil {
			appLogger.Fatal("Failed to create goal", zap.String("title", goal.Title), zap.Error(err))
		}
	}

	budget := &models.Budget{
		ID:              uuid.New(),
		UserID:          demo.ID,
		Category:        models.CategoryGroceries,
		Amount:          decimal.NewFromInt(500),
		Spent:           decimal.Zero,
		Month:           now.Format("2006-01"),
		NotifyThreshold: models.DefaultNotifyThreshold,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := budgetRepo.Create(ctx, budget); err != nil {
		appLogger.Fatal("Failed to create budget", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("admin_email", admin.Email),
		zap.String("demo_email", demo.Email),
	)
}
