package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

type TransactionCategory string

const (
	CategoryFood           TransactionCategory = "Food"
	CategoryTransportation TransactionCategory = "Transportation"
	CategoryEntertainment  TransactionCategory = "Entertainment"
	CategoryUtilities      TransactionCategory = "Utilities"
	CategoryHealth         TransactionCategory = "Health"
	CategoryShopping       TransactionCategory = "Shopping"
	CategoryEducation      TransactionCategory = "Education"
	CategoryInvestment     TransactionCategory = "Investment"
	CategorySalary         TransactionCategory = "Salary"
	CategoryRent           TransactionCategory = "Rent"
	CategoryGroceries      TransactionCategory = "Groceries"
	CategoryOther          TransactionCategory = "Other"
)

// Categories lists every valid transaction category in a stable order.
var Categories = []TransactionCategory{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealth,
	CategoryShopping,
	CategoryEducation,
	CategoryInvestment,
	CategorySalary,
	CategoryRent,
	CategoryGroceries,
	CategoryOther,
}

func (c TransactionCategory) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Transaction struct {
	ID        uuid.UUID           `db:"id"`
	UserID    uuid.UUID           `db:"user_id"`
	Amount    decimal.Decimal     `db:"amount"`
	Currency  string              `db:"currency"`
	Type      TransactionType     `db:"type"`
	Category  TransactionCategory `db:"category"`
	Date      time.Time           `db:"date"`
	Notes     string              `db:"notes"`
	Tags      []string            `db:"tags"`
	CreatedAt time.Time           `db:"created_at"`
	UpdatedAt time.Time           `db:"updated_at"`
}
