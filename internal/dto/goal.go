package dto

import "github.com/shopspring/decimal"

type CreateGoalRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline,omitempty"` // RFC 3339, optional
	AutoAllocate bool            `json:"auto_allocate"`
}

// UpdateGoalRequest carries partial updates; nil fields are left
// unchanged.
type UpdateGoalRequest struct {
	Title         *string          `json:"title"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	AutoAllocate  *bool            `json:"auto_allocate"`
	IsAchieved    *bool            `json:"is_achieved"`
}

type GoalResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	AutoAllocate  bool            `json:"auto_allocate"`
	Deadline      string          `json:"deadline,omitempty"`
	IsAchieved    bool            `json:"is_achieved"`
	CreatedAt     string          `json:"created_at"`
}
