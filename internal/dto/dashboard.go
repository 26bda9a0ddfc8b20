package dto

import "github.com/shopspring/decimal"

type UserDashboardResponse struct {
	User              UserResponse    `json:"user"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
}

type AdminDashboardResponse struct {
	TotalUsers        int64           `json:"total_users"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
}
