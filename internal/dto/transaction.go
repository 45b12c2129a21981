package dto

import (
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a journal entry.
type CreateTransactionRequest struct {
	WalletID        string                 `json:"walletID" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	Category        string                 `json:"category" binding:"max=100"`
	Description     string                 `json:"description" binding:"max=500"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
}

// TransactionResponse defines the data returned for a journal entry.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	WalletID        string                 `json:"walletID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Amount          decimal.Decimal        `json:"amount"`
	Category        string                 `json:"category"`
	Description     string                 `json:"description"`
	TransactionDate time.Time              `json:"transactionDate"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		WalletID:        t.WalletID,
		TransactionType: t.TransactionType,
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
}

// ListTransactionsParams defines query parameters for listing journal entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain.Transaction to ListTransactionsResponse
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
