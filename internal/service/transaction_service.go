package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionService owns the transaction-ingestion boundary. A created
// transaction is durably persisted first; the allocation engine and
// budget alerting run afterwards and are never allowed to fail the
// create itself.
type TransactionService struct {
	transactions TransactionStore
	allocator    IncomeAllocator
	alerter      ExpenseAlerter
	logger       *zap.Logger
}

func NewTransactionService(
	transactions TransactionStore,
	allocator IncomeAllocator,
	alerter ExpenseAlerter,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		allocator:    allocator,
		alerter:      alerter,
		logger:       logger,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	txType := models.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}
	category := models.TransactionCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
		date = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    req.Amount,
		Currency:  currency,
		Type:      txType,
		Category:  category,
		Date:      date,
		Notes:     sanitizeUTF8(req.Notes),
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	// The transaction is durable; everything below is best effort.
	switch tx.Type {
	case models.TypeIncome:
		if err := s.allocator.AllocateIncome(ctx, userID, tx.Amount); err != nil {
			s.logger.Warn("Income allocation incomplete",
				zap.String("transaction_id", tx.ID.String()),
				zap.Error(err),
			)
		}
	case models.TypeExpense:
		s.alerter.ExpenseRecorded(ctx, userID, tx.Category, tx.Amount)
	}

	return transactionToResponse(tx), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionResponse, error) {
	transactions, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	responses := make([]*dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, transactionToResponse(tx))
	}
	return responses, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, txID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.ownedTransaction(ctx, userID, txID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		tx.Amount = *req.Amount
	}
	if req.Type != nil {
		txType := models.TransactionType(*req.Type)
		if !txType.IsValid() {
			return nil, fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
		}
		tx.Type = txType
	}
	if req.Category != nil {
		category := models.TransactionCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		tx.Category = category
	}
	if req.Notes != nil {
		tx.Notes = sanitizeUTF8(*req.Notes)
	}
	if req.Tags != nil {
		tx.Tags = req.Tags
	}
	tx.UpdatedAt = time.Now()

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return transactionToResponse(tx), nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, txID uuid.UUID) error {
	if _, err := s.ownedTransaction(ctx, userID, txID); err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, txID); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) ownedTransaction(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, txID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func transactionToResponse(tx *models.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:        tx.ID.String(),
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		Type:      string(tx.Type),
		Category:  string(tx.Category),
		Date:      tx.Date.Format(time.RFC3339),
		Notes:     tx.Notes,
		Tags:      tx.Tags,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}
