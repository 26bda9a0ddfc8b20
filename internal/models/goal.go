package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a user-defined savings target. CurrentAmount only ever grows
// under automatic allocation; manual edits through the goals API may set
// it to anything. IsAchieved is set explicitly by the owner, never
// derived from the amounts.
type Goal struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Title         string          `db:"title"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	AutoAllocate  bool            `db:"auto_allocate"`
	Deadline      *time.Time      `db:"deadline"`
	IsAchieved    bool            `db:"is_achieved"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Remaining returns how much is still needed to reach the target.
func (g *Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
