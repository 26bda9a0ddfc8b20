package repository

import (
	"context"
	"errors"
	"time"

	"finwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{"id", "user_id", "amount", "currency", "type", "category", "date", "notes", "tags", "created_at", "updated_at"}

// TransactionFilter narrows transaction queries for reporting. Zero
// values mean "no constraint".
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  models.TransactionCategory
	Tags      []string
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Amount, tx.Currency, tx.Type, tx.Category, tx.Date, tx.Notes, tx.Tags, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Type, &tx.Category, &tx.Date, &tx.Notes, &tx.Tags, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) ListAll(ctx context.Context) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

// Filter returns a user's transactions matching the report filter,
// oldest first.
func (r *TransactionRepository) Filter(ctx context.Context, userID uuid.UUID, filter TransactionFilter) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if len(filter.Tags) > 0 {
		query = query.Where(squirrel.Expr("tags && ?", filter.Tags))
	}

	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("amount", tx.Amount).
		Set("type", tx.Type).
		Set("category", tx.Category).
		Set("notes", tx.Notes).
		Set("tags", tx.Tags).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID}).
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

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
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

func (r *TransactionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, squirrel.Eq{"user_id": userID})
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

// SumByUserAndType totals a user's transaction amounts of the given type.
func (r *TransactionRepository) SumByUserAndType(ctx context.Context, userID uuid.UUID, txType models.TransactionType) (decimal.Decimal, error) {
	return r.sum(ctx, squirrel.Eq{"user_id": userID, "type": txType})
}

// SumByType totals all transaction amounts of the given type across users.
func (r *TransactionRepository) SumByType(ctx context.Context, txType models.TransactionType) (decimal.Decimal, error) {
	return r.sum(ctx, squirrel.Eq{"type": txType})
}

func (r *TransactionRepository) count(ctx context.Context, where squirrel.Eq) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	return count, err
}

func (r *TransactionRepository) sum(ctx context.Context, where squirrel.Eq) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	err = r.db.QueryRow(ctx, sql, args...).Scan(&total)
	return total, err
}

func (r *TransactionRepository) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Amount, &tx.Currency, &tx.Type, &tx.Category, &tx.Date, &tx.Notes, &tx.Tags, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
