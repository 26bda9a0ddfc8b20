package dto

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"` // RFC 3339, defaults to now
	Notes    string          `json:"notes"`
	Tags     []string        `json:"tags"`
}

// UpdateTransactionRequest carries partial updates; nil fields are left
// unchanged.
type UpdateTransactionRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Type     *string          `json:"type"`
	Category *string          `json:"category"`
	Notes    *string          `json:"notes"`
	Tags     []string         `json:"tags"`
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	CreatedAt string          `json:"created_at"`
}
