package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrGoalNotFound = errors.New("goal not found")

// maxAllocationRetries bounds the optimistic-write retry loop when two
// allocation runs race on the same goal.
const maxAllocationRetries = 3

type GoalService struct {
	goals    GoalStore
	notifier Notifier
	policy   AllocationPolicy
	logger   *zap.Logger
}

func NewGoalService(goals GoalStore, notifier Notifier, policy AllocationPolicy, logger *zap.Logger) *GoalService {
	return &GoalService{
		goals:    goals,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
	}
}

func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
	}

	var deadline *time.Time
	if req.Deadline != "" {
		parsed, err := parseDate(req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid deadline", ErrInvalidInput)
		}
		deadline = &parsed
	}

	now := time.Now()
	goal := &models.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		AutoAllocate:  req.AutoAllocate,
		Deadline:      deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return goalToResponse(goal), nil
}

func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*dto.GoalResponse, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}

	responses := make([]*dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, goalToResponse(goal))
	}
	return responses, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return nil, fmt.Errorf("%w: current amount must not be negative", ErrInvalidInput)
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.AutoAllocate != nil {
		goal.AutoAllocate = *req.AutoAllocate
	}
	if req.IsAchieved != nil {
		goal.IsAchieved = *req.IsAchieved
	}
	goal.UpdatedAt = time.Now()

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}

	return goalToResponse(goal), nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

// AllocateIncome distributes a share of an income transaction across the
// user's auto-allocate goals. Each goal is persisted independently:
// a failed save never rolls back increments already applied to other
// goals. A partial run is reported as *AllocationError.
func (s *GoalService) AllocateIncome(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	goals, err := s.goals.ListAutoAllocate(ctx, userID)
	if err != nil {
		return &AllocationError{Err: fmt.Errorf("loading goals: %w", err)}
	}
	if len(goals) == 0 {
		return nil
	}

	increments := s.policy.Allocate(amount, goals)
	if len(increments) == 0 {
		return nil
	}

	var applied, failed []uuid.UUID
	var firstErr error
	for _, goal := range goals {
		increment, ok := increments[goal.ID]
		if !ok || !increment.IsPositive() {
			continue
		}

		if err := s.applyIncrement(ctx, goal, increment); err != nil {
			s.logger.Error("Failed to persist goal allocation",
				zap.String("goal_id", goal.ID.String()),
				zap.String("increment", increment.String()),
				zap.Error(err),
			)
			failed = append(failed, goal.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, goal.ID)
	}

	if len(failed) > 0 {
		return &AllocationError{Applied: applied, Failed: failed, Err: firstErr}
	}
	return nil
}

// applyIncrement writes one goal's increment with an optimistic
// conditional update, retrying on conflict with a fresh snapshot. The
// increment is re-clamped each attempt so a concurrent allocation can
// never push current past target.
func (s *GoalService) applyIncrement(ctx context.Context, goal *models.Goal, increment decimal.Decimal) error {
	current := goal.CurrentAmount
	for attempt := 0; attempt < maxAllocationRetries; attempt++ {
		remaining := goal.TargetAmount.Sub(current)
		if !remaining.IsPositive() {
			// Another writer funded the goal meanwhile.
			return nil
		}
		applied, err := s.goals.AddToCurrentAmount(ctx, goal.ID, current, decimal.Min(increment, remaining))
		if err != nil {
			return err
		}
		if applied {
			return nil
		}

		fresh, err := s.goals.GetByID(ctx, goal.ID)
		if err != nil {
			return err
		}
		current = fresh.CurrentAmount
	}
	return fmt.Errorf("allocation conflict on goal %s after %d attempts", goal.ID, maxAllocationRetries)
}

// SendDeadlineReminders notifies owners of goals whose deadline has
// passed without the goal being achieved.
func (s *GoalService) SendDeadlineReminders(ctx context.Context) error {
	goals, err := s.goals.ListDeadlinePassed(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("loading goals for reminders: %w", err)
	}

	for _, goal := range goals {
		message := fmt.Sprintf("Reminder: You're approaching your goal deadline for %q!", goal.Title)
		if err := s.notifier.Notify(ctx, goal.UserID, message, models.NotificationGoalReminder); err != nil {
			s.logger.Warn("Failed to send goal reminder",
				zap.String("goal_id", goal.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *GoalService) ownedGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, ErrGoalNotFound
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}

func goalToResponse(goal *models.Goal) *dto.GoalResponse {
	resp := &dto.GoalResponse{
		ID:            goal.ID.String(),
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		AutoAllocate:  goal.AutoAllocate,
		IsAchieved:    goal.IsAchieved,
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
	}
	if goal.Deadline != nil {
		resp.Deadline = goal.Deadline.Format(time.RFC3339)
	}
	return resp
}
