package service

import (
	"context"
	"fmt"
	"strings"

	"finwise/internal/dto"
	"finwise/internal/models"
	"finwise/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService aggregates a user's transactions into income/expense
// totals and per-day trends for charting.
type ReportService struct {
	transactions TransactionStore
	logger       *zap.Logger
}

func NewReportService(transactions TransactionStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		transactions: transactions,
		logger:       logger,
	}
}

func (s *ReportService) Generate(ctx context.Context, userID uuid.UUID, filter dto.ReportFilter) (*dto.ReportResponse, error) {
	storeFilter := repository.TransactionFilter{}

	if filter.StartDate != "" {
		start, err := parseDate(filter.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		storeFilter.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := parseDate(filter.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
		storeFilter.EndDate = &end
	}
	if filter.Category != "" {
		category := models.TransactionCategory(filter.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, filter.Category)
		}
		storeFilter.Category = category
	}
	if filter.Tags != "" {
		for _, tag := range strings.Split(filter.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				storeFilter.Tags = append(storeFilter.Tags, tag)
			}
		}
	}

	transactions, err := s.transactions.Filter(ctx, userID, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("loading transactions for report: %w", err)
	}

	report := &dto.ReportResponse{
		Summary: dto.ReportSummary{
			TotalIncome:   decimal.Zero,
			TotalExpenses: decimal.Zero,
		},
		Trends:       make(map[string]dto.DailyTrend),
		Transactions: make([]*dto.TransactionResponse, 0, len(transactions)),
	}

	for _, tx := range transactions {
		day := tx.Date.UTC().Format("2006-01-02")
		trend := report.Trends[day]

		switch tx.Type {
		case models.TypeIncome:
			report.Summary.TotalIncome = report.Summary.TotalIncome.Add(tx.Amount)
			trend.Income = trend.Income.Add(tx.Amount)
		case models.TypeExpense:
			report.Summary.TotalExpenses = report.Summary.TotalExpenses.Add(tx.Amount)
			trend.Expenses = trend.Expenses.Add(tx.Amount)
		}

		report.Trends[day] = trend
		report.Transactions = append(report.Transactions, transactionToResponse(tx))
	}

	return report, nil
}
