package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the signed effect of a journal entry on its wallet.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is an explicit income or expense entry against a wallet.
// It is never updated in place; deleting it reverses its effect.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	WalletID        string          `json:"walletID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // Always positive; sign comes from TransactionType
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// SignedAmount returns the balance delta this entry applies to its wallet.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ReversalAmount returns the delta that undoes this entry.
func (t Transaction) ReversalAmount() decimal.Decimal {
	return t.SignedAmount().Neg()
}

// Validate checks the entry's intrinsic fields.
func (t Transaction) Validate() error {
	if t.WalletID == "" {
		return fmt.Errorf("wallet ID is required")
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("unknown transaction type %q", t.TransactionType)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
