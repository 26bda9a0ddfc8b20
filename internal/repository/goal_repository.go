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

var goalColumns = []string{"id", "user_id", "title", "target_amount", "current_amount", "auto_allocate", "deadline", "is_achieved", "created_at", "updated_at"}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Insert("goals").
		Columns(goalColumns...).
		Values(goal.ID, goal.UserID, goal.Title, goal.TargetAmount, goal.CurrentAmount, goal.AutoAllocate, goal.Deadline, goal.IsAchieved, goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var goal models.Goal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.TargetAmount, &goal.CurrentAmount, &goal.AutoAllocate, &goal.Deadline, &goal.IsAchieved, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

// ListAutoAllocate returns the user's goals flagged for automatic
// savings, in insertion order.
func (r *GoalRepository) ListAutoAllocate(ctx context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"user_id": userID, "auto_allocate": true}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

// ListDeadlinePassed returns goals across all users whose deadline is at
// or before now and which are not yet achieved.
func (r *GoalRepository) ListDeadlinePassed(ctx context.Context, now time.Time) ([]*models.Goal, error) {
	query := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.LtOrEq{"deadline": now}).
		Where(squirrel.Eq{"is_achieved": false}).
		OrderBy("deadline ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryMany(ctx, query)
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Update("goals").
		Set("title", goal.Title).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("auto_allocate", goal.AutoAllocate).
		Set("deadline", goal.Deadline).
		Set("is_achieved", goal.IsAchieved).
		Set("updated_at", goal.UpdatedAt).
		Where(squirrel.Eq{"id": goal.ID}).
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

// AddToCurrentAmount applies an allocation increment with an optimistic
// conditional write: it only succeeds if current_amount still equals the
// snapshot the increment was computed from. Returns false (and no error)
// when a concurrent writer got there first.
func (r *GoalRepository) AddToCurrentAmount(ctx context.Context, id uuid.UUID, expected, increment decimal.Decimal) (bool, error) {
	query := squirrel.Update("goals").
		Set("current_amount", expected.Add(increment)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "current_amount": expected}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("goals").
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

func (r *GoalRepository) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Goal, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Title, &goal.TargetAmount, &goal.CurrentAmount, &goal.AutoAllocate, &goal.Deadline, &goal.IsAchieved, &goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &goal)
	}

	return goals, rows.Err()
}
