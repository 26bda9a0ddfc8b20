package service

import (
	"fmt"

	"finwise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationPolicy splits a share of each income transaction across a
// user's auto-allocate goals, proportionally to how far each goal is
// from its target. It is a pure computation; persisting the increments
// is the caller's job.
type AllocationPolicy struct {
	savingsRate decimal.Decimal
	precision   int32
}

// NewAllocationPolicy builds a policy with the given savings rate (the
// fraction of income reserved for goals) and money precision (decimal
// places increments are rounded to).
func NewAllocationPolicy(savingsRate float64, moneyPrecision int) AllocationPolicy {
	return AllocationPolicy{
		savingsRate: decimal.NewFromFloat(savingsRate),
		precision:   int32(moneyPrecision),
	}
}

// Allocate returns the increment for each eligible goal. Eligible means
// auto-allocate with target not yet reached. Each goal's share of the
// savings pool is proportional to its remaining need and clamped so the
// goal never overshoots its target. Shares are clamped independently, so
// the pool may go partially unused; leftover is not redistributed.
func (p AllocationPolicy) Allocate(income decimal.Decimal, goals []*models.Goal) map[uuid.UUID]decimal.Decimal {
	increments := make(map[uuid.UUID]decimal.Decimal)
	if !income.IsPositive() || len(goals) == 0 {
		return increments
	}

	totalRemaining := decimal.Zero
	for _, goal := range goals {
		if !goal.AutoAllocate {
			continue
		}
		if remaining := goal.Remaining(); remaining.IsPositive() {
			totalRemaining = totalRemaining.Add(remaining)
		}
	}
	if !totalRemaining.IsPositive() {
		return increments
	}

	savePool := income.Mul(p.savingsRate)

	for _, goal := range goals {
		if !goal.AutoAllocate {
			continue
		}
		remaining := goal.Remaining()
		if !remaining.IsPositive() {
			continue
		}

		share := remaining.Mul(savePool).Div(totalRemaining)
		increment := decimal.Min(share, remaining)

		// Round down so the sum of increments stays within the pool.
		increment = increment.RoundDown(p.precision)
		if increment.IsPositive() {
			increments[goal.ID] = increment
		}
	}

	return increments
}

// AllocationError reports a partially applied allocation run. Increments
// already persisted stay persisted; each goal's save is independent.
type AllocationError struct {
	Applied []uuid.UUID
	Failed  []uuid.UUID
	Err     error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation incomplete: %d applied, %d failed: %v", len(e.Applied), len(e.Failed), e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
