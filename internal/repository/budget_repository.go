package repository

import (
	"context"
	"errors"

	"finwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var budgetColumns = []string{"id", "user_id", "category", "amount", "spent", "month", "notify_threshold", "adjustment_recommendation", "created_at", "updated_at"}

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a budget. One budget per (user, category, month) is
// enforced by a unique index; violating it returns ErrDuplicate.
func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	query := squirrel.Insert("budgets").
		Columns(budgetColumns...).
		Values(budget.ID, budget.UserID, budget.Category, budget.Amount, budget.Spent, budget.Month, budget.NotifyThreshold, budget.AdjustmentRecommendation, budget.CreatedAt, budget.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryOne(ctx, query)
}

// FindByUserAndCategory returns the user's budget for a category. With
// multiple matching rows the oldest wins.
func (r *BudgetRepository) FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category models.TransactionCategory) (*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "category": category}).
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryOne(ctx, query)
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		var budget models.Budget
		if err := rows.Scan(
			&budget.ID, &budget.UserID, &budget.Category, &budget.Amount, &budget.Spent, &budget.Month, &budget.NotifyThreshold, &budget.AdjustmentRecommendation, &budget.CreatedAt, &budget.UpdatedAt,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, &budget)
	}

	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	query := squirrel.Update("budgets").
		Set("amount", budget.Amount).
		Set("spent", budget.Spent).
		Set("notify_threshold", budget.NotifyThreshold).
		Set("adjustment_recommendation", budget.AdjustmentRecommendation).
		Set("updated_at", budget.UpdatedAt).
		Where(squirrel.Eq{"id": budget.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("budgets").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) queryOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Budget, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var budget models.Budget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&budget.ID, &budget.UserID, &budget.Category, &budget.Amount, &budget.Spent, &budget.Month, &budget.NotifyThreshold, &budget.AdjustmentRecommendation, &budget.CreatedAt, &budget.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &budget, nil
}
