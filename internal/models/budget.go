package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultNotifyThreshold is the budget-warning threshold applied when a
// budget is created without one (warn at 80% of the limit).
var DefaultNotifyThreshold = decimal.NewFromFloat(0.8)

// Budget is a per-category spending limit for one month. Spent is
// accumulated by explicit budget updates; the alerting flows only read it.
type Budget struct {
	ID                       uuid.UUID           `db:"id"`
	UserID                   uuid.UUID           `db:"user_id"`
	Category                 TransactionCategory `db:"category"`
	Amount                   decimal.Decimal     `db:"amount"`
	Spent                    decimal.Decimal     `db:"spent"`
	Month                    string              `db:"month"` // 'YYYY-MM'
	NotifyThreshold          decimal.Decimal     `db:"notify_threshold"`
	AdjustmentRecommendation decimal.Decimal     `db:"adjustment_recommendation"`
	CreatedAt                time.Time           `db:"created_at"`
	UpdatedAt                time.Time           `db:"updated_at"`
}

// ThresholdAmount returns the spend level at which a warning fires.
func (b *Budget) ThresholdAmount() decimal.Decimal {
	return b.Amount.Mul(b.NotifyThreshold)
}
