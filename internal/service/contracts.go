package service

import (
	"context"
	"time"

	"finwise/internal/models"
	"finwise/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collaborator contracts consumed by the services. The repository types
// satisfy the store interfaces; tests substitute fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
	ListAll(ctx context.Context) ([]*models.Transaction, error)
	Filter(ctx context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumByUserAndType(ctx context.Context, userID uuid.UUID, txType models.TransactionType) (decimal.Decimal, error)
	SumByType(ctx context.Context, txType models.TransactionType) (decimal.Decimal, error)
}

type GoalStore interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error)
	ListAutoAllocate(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error)
	ListDeadlinePassed(ctx context.Context, now time.Time) ([]*models.Goal, error)
	Update(ctx context.Context, goal *models.Goal) error
	AddToCurrentAmount(ctx context.Context, id uuid.UUID, expected, increment decimal.Decimal) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BudgetStore interface {
	Create(ctx context.Context, budget *models.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error)
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category models.TransactionCategory) (*models.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// Notifier delivers a notification to a user. Failures are the caller's
// problem to log; the core flows treat delivery as best effort.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message, notificationType string) error
}

// IncomeAllocator runs the savings engine after an income transaction is
// durably written.
type IncomeAllocator interface {
	AllocateIncome(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}

// ExpenseAlerter checks a freshly written expense against the matching
// budget. It never returns an error: alerting is fire-and-forget.
type ExpenseAlerter interface {
	ExpenseRecorded(ctx context.Context, userID uuid.UUID, category models.TransactionCategory, amount decimal.Decimal)
}
