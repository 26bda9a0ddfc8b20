package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"
	"finwise/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrBudgetNotOwned  = errors.New("budget not owned by caller")
	ErrDuplicateBudget = errors.New("budget already exists for this category and month")
)

// ExceedPolicy decides whether a freshly recorded expense trips the
// budget alert. The comparison basis is deliberately swappable: the
// historical behavior compares only the single new expense against the
// limit, not the accumulated spend.
type ExceedPolicy interface {
	Name() string
	Exceeded(budget *models.Budget, amount decimal.Decimal) bool
}

// SingleTransactionExceed fires when one expense alone is larger than
// the budget limit.
type SingleTransactionExceed struct{}

func (SingleTransactionExceed) Name() string { return "transaction" }

func (SingleTransactionExceed) Exceeded(budget *models.Budget, amount decimal.Decimal) bool {
	return amount.GreaterThan(budget.Amount)
}

// RunningTotalExceed fires when accumulated spend plus the new expense
// passes the budget limit.
type RunningTotalExceed struct{}

func (RunningTotalExceed) Name() string { return "running-total" }

func (RunningTotalExceed) Exceeded(budget *models.Budget, amount decimal.Decimal) bool {
	return budget.Spent.Add(amount).GreaterThan(budget.Amount)
}

// ExceedPolicyByName resolves a configured policy name, defaulting to
// the single-transaction basis.
func ExceedPolicyByName(name string) ExceedPolicy {
	if name == (RunningTotalExceed{}).Name() {
		return RunningTotalExceed{}
	}
	return SingleTransactionExceed{}
}

type BudgetService struct {
	budgets       BudgetStore
	transactions  TransactionStore
	notifier      Notifier
	policy        ExceedPolicy
	notifyTimeout time.Duration
	logger        *zap.Logger
}

func NewBudgetService(
	budgets BudgetStore,
	transactions TransactionStore,
	notifier Notifier,
	policy ExceedPolicy,
	notifyTimeout time.Duration,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		budgets:       budgets,
		transactions:  transactions,
		notifier:      notifier,
		policy:        policy,
		notifyTimeout: notifyTimeout,
		logger:        logger,
	}
}

func (s *BudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
	category := models.TransactionCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return nil, fmt.Errorf("%w: month must be formatted YYYY-MM", ErrInvalidInput)
	}

	threshold := models.DefaultNotifyThreshold
	if req.NotifyThreshold != nil {
		if !req.NotifyThreshold.IsPositive() || req.NotifyThreshold.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: notify threshold must be in (0, 1]", ErrInvalidInput)
		}
		threshold = *req.NotifyThreshold
	}

	now := time.Now()
	budget := &models.Budget{
		ID:                       uuid.New(),
		UserID:                   userID,
		Category:                 category,
		Amount:                   req.Amount,
		Spent:                    decimal.Zero,
		Month:                    req.Month,
		NotifyThreshold:          threshold,
		AdjustmentRecommendation: decimal.Zero,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.budgets.Create(ctx, budget); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateBudget
		}
		return nil, fmt.Errorf("creating budget: %w", err)
	}

	return budgetToResponse(budget), nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetResponse, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	responses := make([]*dto.BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		responses = append(responses, budgetToResponse(budget))
	}
	return responses, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*dto.BudgetResponse, error) {
	budget, err := s.ownedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
		}
		budget.Amount = *req.Amount
	}
	if req.Spent != nil {
		if req.Spent.IsNegative() {
			return nil, fmt.Errorf("%w: spent must not be negative", ErrInvalidInput)
		}
		budget.Spent = *req.Spent
	}
	if req.NotifyThreshold != nil {
		if !req.NotifyThreshold.IsPositive() || req.NotifyThreshold.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: notify threshold must be in (0, 1]", ErrInvalidInput)
		}
		budget.NotifyThreshold = *req.NotifyThreshold
	}
	budget.UpdatedAt = time.Now()

	if err := s.budgets.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("updating budget: %w", err)
	}

	return budgetToResponse(budget), nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID uuid.UUID) error {
	if _, err := s.ownedBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgets.Delete(ctx, budgetID); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return nil
}

// ExpenseRecorded checks one new expense against the user's budget for
// its category and emits a spending alert when the exceed policy trips.
// All failures are logged and swallowed: alerting never affects the
// transaction that triggered it.
func (s *BudgetService) ExpenseRecorded(ctx context.Context, userID uuid.UUID, category models.TransactionCategory, amount decimal.Decimal) {
	budget, err := s.budgets.FindByUserAndCategory(ctx, userID, category)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Budget lookup failed during expense alert",
				zap.String("category", string(category)),
				zap.Error(err),
			)
		}
		return
	}

	if !s.policy.Exceeded(budget, amount) {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	message := fmt.Sprintf("You exceeded your %s budget!", category)
	if err := s.notifier.Notify(notifyCtx, userID, message, models.NotificationSpendingAlert); err != nil {
		s.logger.Warn("Failed to deliver spending alert",
			zap.String("category", string(category)),
			zap.Error(err),
		)
	}
}

// CheckStatus returns a warning for every budget whose accumulated spend
// has reached its notify threshold, in budget insertion order.
func (s *BudgetService) CheckStatus(ctx context.Context, userID uuid.UUID) ([]dto.BudgetWarning, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	warnings := []dto.BudgetWarning{}
	for _, budget := range budgets {
		if budget.Spent.GreaterThanOrEqual(budget.ThresholdAmount()) {
			warnings = append(warnings, dto.BudgetWarning{
				Category: string(budget.Category),
				Message: fmt.Sprintf("Warning: You have spent %s out of your %s budget for %s.",
					budget.Spent, budget.Amount, budget.Category),
			})
		}
	}
	return warnings, nil
}

// SuggestAdjustments recommends a new limit per budget from the user's
// total spending in that category plus a 10% buffer, rounded up, and
// persists the recommendation on each budget.
func (s *BudgetService) SuggestAdjustments(ctx context.Context, userID uuid.UUID) ([]*dto.BudgetResponse, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	transactions, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	buffer := decimal.NewFromFloat(1.1)
	responses := make([]*dto.BudgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		total := decimal.Zero
		for _, tx := range transactions {
			if tx.Category == budget.Category {
				total = total.Add(tx.Amount)
			}
		}

		budget.AdjustmentRecommendation = total.Mul(buffer).Ceil()
		budget.UpdatedAt = time.Now()
		if err := s.budgets.Update(ctx, budget); err != nil {
			return nil, fmt.Errorf("saving adjustment recommendation: %w", err)
		}
		responses = append(responses, budgetToResponse(budget))
	}
	return responses, nil
}

func (s *BudgetService) ownedBudget(ctx context.Context, userID, budgetID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, ErrBudgetNotFound
	}
	if budget.UserID != userID {
		return nil, ErrBudgetNotOwned
	}
	return budget, nil
}

func budgetToResponse(budget *models.Budget) *dto.BudgetResponse {
	return &dto.BudgetResponse{
		ID:                       budget.ID.String(),
		Category:                 string(budget.Category),
		Amount:                   budget.Amount,
		Spent:                    budget.Spent,
		Month:                    budget.Month,
		NotifyThreshold:          budget.NotifyThreshold,
		AdjustmentRecommendation: budget.AdjustmentRecommendation,
		CreatedAt:                budget.CreatedAt.Format(time.RFC3339),
	}
}
