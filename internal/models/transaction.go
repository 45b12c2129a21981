package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is INCOME or EXPENSE.
type TransactionType string

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	WalletID        string          `db:"wallet_id"` // FK -> wallets, ON DELETE CASCADE
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"` // Positive
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
