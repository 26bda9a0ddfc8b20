package dto

import "github.com/shopspring/decimal"

type ReportFilter struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Category  string `query:"category"`
	Tags      string `query:"tags"` // comma-separated
}

type ReportSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// DailyTrend holds one day's income and expense totals for charting.
type DailyTrend struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

type ReportResponse struct {
	Summary      ReportSummary          `json:"summary"`
	Trends       map[string]DailyTrend  `json:"trends"` // keyed 'YYYY-MM-DD'
	Transactions []*TransactionResponse `json:"transactions"`
}
