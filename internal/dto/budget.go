package dto

import "github.com/shopspring/decimal"

type CreateBudgetRequest struct {
	Category        string           `json:"category"`
	Amount          decimal.Decimal  `json:"amount"`
	Month           string           `json:"month"` // 'YYYY-MM'
	NotifyThreshold *decimal.Decimal `json:"notify_threshold"`
}

// UpdateBudgetRequest carries partial updates; nil fields are left
// unchanged.
type UpdateBudgetRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Spent           *decimal.Decimal `json:"spent"`
	NotifyThreshold *decimal.Decimal `json:"notify_threshold"`
}

type BudgetResponse struct {
	ID                       string          `json:"id"`
	Category                 string          `json:"category"`
	Amount                   decimal.Decimal `json:"amount"`
	Spent                    decimal.Decimal `json:"spent"`
	Month                    string          `json:"month"`
	NotifyThreshold          decimal.Decimal `json:"notify_threshold"`
	AdjustmentRecommendation decimal.Decimal `json:"adjustment_recommendation"`
	CreatedAt                string          `json:"created_at"`
}

type BudgetWarning struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}
