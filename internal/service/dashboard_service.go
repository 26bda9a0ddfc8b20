package service

import (
	"context"
	"fmt"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardService summarizes one user's financial activity.
type DashboardService struct {
	users        UserStore
	transactions TransactionStore
	logger       *zap.Logger
}

func NewDashboardService(users UserStore, transactions TransactionStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		users:        users,
		transactions: transactions,
		logger:       logger,
	}
}

func (s *DashboardService) UserDashboard(ctx context.Context, userID uuid.UUID) (*dto.UserDashboardResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	count, err := s.transactions.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}
	income, err := s.transactions.SumByUserAndType(ctx, userID, models.TypeIncome)
	if err != nil {
		return nil, fmt.Errorf("summing income: %w", err)
	}
	expenses, err := s.transactions.SumByUserAndType(ctx, userID, models.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("summing expenses: %w", err)
	}

	return &dto.UserDashboardResponse{
		User: dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
		TotalTransactions: count,
		TotalIncome:       income,
		TotalExpenses:     expenses,
	}, nil
}
