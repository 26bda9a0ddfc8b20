package service

import (
	"context"
	"testing"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportTx(userID uuid.UUID, txType models.TransactionType, category models.TransactionCategory, amount, day string, tags ...string) *models.Transaction {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &models.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Amount:   dec(amount),
		Currency: "USD",
		Type:     txType,
		Category: category,
		Date:     date,
		Tags:     tags,
	}
}

func TestGenerateReportTotalsAndTrends(t *testing.T) {
	userID := uuid.New()
	store := newFakeTransactionStore(
		reportTx(userID, models.TypeIncome, models.CategorySalary, "3000", "2026-08-01"),
		reportTx(userID, models.TypeExpense, models.CategoryRent, "900", "2026-08-01"),
		reportTx(userID, models.TypeExpense, models.CategoryFood, "45.50", "2026-08-02"),
		reportTx(uuid.New(), models.TypeExpense, models.CategoryFood, "999", "2026-08-02"), // another user's spend
	)
	svc := NewReportService(store, testLogger())

	report, err := svc.Generate(context.Background(), userID, dto.ReportFilter{})
	require.NoError(t, err)

	assert.True(t, report.Summary.TotalIncome.Equal(dec("3000")), "got %s", report.Summary.TotalIncome)
	assert.True(t, report.Summary.TotalExpenses.Equal(dec("945.50")), "got %s", report.Summary.TotalExpenses)
	assert.Len(t, report.Transactions, 3)

	require.Len(t, report.Trends, 2)
	first := report.Trends["2026-08-01"]
	assert.True(t, first.Income.Equal(dec("3000")))
	assert.True(t, first.Expenses.Equal(dec("900")))
	second := report.Trends["2026-08-02"]
	assert.True(t, second.Expenses.Equal(dec("45.50")))
}

func TestGenerateReportDateRange(t *testing.T) {
	userID := uuid.New()
	store := newFakeTransactionStore(
		reportTx(userID, models.TypeExpense, models.CategoryFood, "10", "2026-07-15"),
		reportTx(userID, models.TypeExpense, models.CategoryFood, "20", "2026-08-15"),
		reportTx(userID, models.TypeExpense, models.CategoryFood, "30", "2026-09-15"),
	)
	svc := NewReportService(store, testLogger())

	report, err := svc.Generate(context.Background(), userID, dto.ReportFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)

	assert.Len(t, report.Transactions, 1)
	assert.True(t, report.Summary.TotalExpenses.Equal(dec("20")))
}

func TestGenerateReportCategoryAndTags(t *testing.T) {
	userID := uuid.New()
	store := newFakeTransactionStore(
		reportTx(userID, models.TypeExpense, models.CategoryFood, "10", "2026-08-01", "work"),
		reportTx(userID, models.TypeExpense, models.CategoryFood, "20", "2026-08-02", "vacation"),
		reportTx(userID, models.TypeExpense, models.CategoryRent, "900", "2026-08-03", "work"),
	)
	svc := NewReportService(store, testLogger())

	report, err := svc.Generate(context.Background(), userID, dto.ReportFilter{
		Category: "Food",
		Tags:     "work, commute",
	})
	require.NoError(t, err)

	require.Len(t, report.Transactions, 1)
	assert.True(t, report.Summary.TotalExpenses.Equal(dec("10")))
}

func TestGenerateReportRejectsBadFilter(t *testing.T) {
	svc := NewReportService(newFakeTransactionStore(), testLogger())

	_, err := svc.Generate(context.Background(), uuid.New(), dto.ReportFilter{StartDate: "soon"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Generate(context.Background(), uuid.New(), dto.ReportFilter{Category: "Quests"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateReportEmpty(t *testing.T) {
	svc := NewReportService(newFakeTransactionStore(), testLogger())

	report, err := svc.Generate(context.Background(), uuid.New(), dto.ReportFilter{})
	require.NoError(t, err)

	assert.True(t, report.Summary.TotalIncome.IsZero())
	assert.True(t, report.Summary.TotalExpenses.IsZero())
	assert.Empty(t, report.Trends)
	assert.NotNil(t, report.Transactions)
}
