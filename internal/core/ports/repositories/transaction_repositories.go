package repositories

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
)

// TransactionReader defines read operations for journal entries
type TransactionReader interface {
	// FindTransactionByID retrieves a specific journal entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of journal entries across all wallets using token-based pagination.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByWalletID retrieves a page of journal entries for one wallet using token-based pagination.
	ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionTxRepository defines journal operations available inside a unit of work.
type TransactionTxRepository interface {
	// SaveTransaction inserts a journal entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// FindTransactionByIDForUpdate selects a journal entry and locks it.
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// DeleteTransaction removes a journal entry.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
