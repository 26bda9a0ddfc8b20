package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finwise/internal/dto"
	"finwise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionService(store *fakeTransactionStore, allocator *fakeAllocator, alerter *fakeAlerter) *TransactionService {
	return NewTransactionService(store, allocator, alerter, testLogger())
}

func TestCreateTransactionIncomeTriggersAllocation(t *testing.T) {
	store := newFakeTransactionStore()
	allocator := &fakeAllocator{}
	alerter := &fakeAlerter{}
	svc := newTransactionService(store, allocator, alerter)

	userID := uuid.New()
	resp, err := svc.CreateTransaction(context.Background(), userID, &dto.CreateTransactionRequest{
		Amount:   dec("1000"),
		Type:     "income",
		Category: "Salary",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, allocator.calls)
	assert.Equal(t, userID, allocator.lastID)
	assert.True(t, allocator.amount.Equal(dec("1000")))
	assert.Equal(t, 0, alerter.calls)
	assert.Equal(t, "USD", resp.Currency)
}

func TestCreateTransactionExpenseTriggersAlert(t *testing.T) {
	store := newFakeTransactionStore()
	allocator := &fakeAllocator{}
	alerter := &fakeAlerter{}
	svc := newTransactionService(store, allocator, alerter)

	_, err := svc.CreateTransaction(context.Background(), uuid.New(), &dto.CreateTransactionRequest{
		Amount:   dec("42.50"),
		Type:     "expense",
		Category: "Groceries",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, allocator.calls)
	assert.Equal(t, 1, alerter.calls)
	assert.Equal(t, models.CategoryGroceries, alerter.category)
	assert.True(t, alerter.amount.Equal(dec("42.50")))
}

func TestCreateTransactionSurvivesAllocationFailure(t *testing.T) {
	store := newFakeTransactionStore()
	allocator := &fakeAllocator{err: &AllocationError{Failed: []uuid.UUID{uuid.New()}, Err: errors.New("conflict")}}
	svc := newTransactionService(store, allocator, &fakeAlerter{})

	userID := uuid.New()
	resp, err := svc.CreateTransaction(context.Background(), userID, &dto.CreateTransactionRequest{
		Amount:   dec("1000"),
		Type:     "income",
		Category: "Salary",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// The transaction itself is persisted regardless.
	saved, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestCreateTransactionPersistFailureSkipsHooks(t *testing.T) {
	store := newFakeTransactionStore()
	store.createErr = errors.New("disk full")
	allocator := &fakeAllocator{}
	svc := newTransactionService(store, allocator, &fakeAlerter{})

	_, err := svc.CreateTransaction(context.Background(), uuid.New(), &dto.CreateTransactionRequest{
		Amount:   dec("1000"),
		Type:     "income",
		Category: "Salary",
	})
	require.Error(t, err)
	assert.Equal(t, 0, allocator.calls)
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore(), &fakeAllocator{}, &fakeAlerter{})
	userID := uuid.New()

	cases := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{"zero amount", dto.CreateTransactionRequest{Amount: decimal.Zero, Type: "income", Category: "Salary"}},
		{"negative amount", dto.CreateTransactionRequest{Amount: dec("-10"), Type: "income", Category: "Salary"}},
		{"bad type", dto.CreateTransactionRequest{Amount: dec("10"), Type: "transfer", Category: "Salary"}},
		{"bad category", dto.CreateTransactionRequest{Amount: dec("10"), Type: "expense", Category: "Bribes"}},
		{"bad date", dto.CreateTransactionRequest{Amount: dec("10"), Type: "expense", Category: "Food", Date: "yesterday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(context.Background(), userID, &tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateTransactionParsesDate(t *testing.T) {
	svc := newTransactionService(newFakeTransactionStore(), &fakeAllocator{}, &fakeAlerter{})

	resp, err := svc.CreateTransaction(context.Background(), uuid.New(), &dto.CreateTransactionRequest{
		Amount:   dec("10"),
		Type:     "expense",
		Category: "Food",
		Date:     "2026-08-15",
	})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.Date)
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.August, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestUpdateTransactionPartial(t *testing.T) {
	userID := uuid.New()
	tx := &models.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Amount:   dec("20"),
		Currency: "USD",
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
		Date:     time.Now(),
		Notes:    "lunch",
	}
	store := newFakeTransactionStore(tx)
	svc := newTransactionService(store, &fakeAllocator{}, &fakeAlerter{})

	amount := dec("25")
	resp, err := svc.UpdateTransaction(context.Background(), userID, tx.ID, &dto.UpdateTransactionRequest{Amount: &amount})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(dec("25")))
	assert.Equal(t, "lunch", resp.Notes)
	assert.Equal(t, "Food", resp.Category)
}

func TestTransactionOwnership(t *testing.T) {
	tx := &models.Transaction{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Amount:   dec("20"),
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
	}
	store := newFakeTransactionStore(tx)
	svc := newTransactionService(store, &fakeAllocator{}, &fakeAlerter{})

	stranger := uuid.New()
	amount := dec("25")
	_, err := svc.UpdateTransaction(context.Background(), stranger, tx.ID, &dto.UpdateTransactionRequest{Amount: &amount})
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	assert.ErrorIs(t, svc.DeleteTransaction(context.Background(), stranger, tx.ID), ErrTransactionNotFound)
	assert.NoError(t, svc.DeleteTransaction(context.Background(), tx.UserID, tx.ID))
}
