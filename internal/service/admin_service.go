package service

import (
	"context"
	"errors"
	"fmt"

	"finwise/internal/dto"
	"finwise/internal/models"
	"finwise/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService backs the admin-only endpoints: cross-user listings,
// deletions, and the service-wide dashboard.
type AdminService struct {
	users        UserStore
	transactions TransactionStore
	logger       *zap.Logger
}

func NewAdminService(users UserStore, transactions TransactionStore, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:        users,
		transactions: transactions,
		logger:       logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, &dto.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		})
	}
	return responses, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

func (s *AdminService) ListTransactions(ctx context.Context) ([]*dto.TransactionResponse, error) {
	transactions, err := s.transactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	responses := make([]*dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, transactionToResponse(tx))
	}
	return responses, nil
}

func (s *AdminService) DeleteTransaction(ctx context.Context, txID uuid.UUID) error {
	if err := s.transactions.Delete(ctx, txID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	txCount, err := s.transactions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting transactions: %w", err)
	}
	income, err := s.transactions.SumByType(ctx, models.TypeIncome)
	if err != nil {
		return nil, fmt.Errorf("summing income: %w", err)
	}
	expenses, err := s.transactions.SumByType(ctx, models.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("summing expenses: %w", err)
	}

	return &dto.AdminDashboardResponse{
		TotalUsers:        userCount,
		TotalTransactions: txCount,
		TotalIncome:       income,
		TotalExpenses:     expenses,
	}, nil
}
