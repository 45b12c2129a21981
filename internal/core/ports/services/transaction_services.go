package services

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/SscSPs/membership_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for journal entries
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific journal entry.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of journal entries across all wallets.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListWalletTransactions retrieves a page of journal entries for one wallet.
	ListWalletTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for journal entries
type TransactionWriterSvc interface {
	// RecordTransaction inserts a journal entry and applies it to its wallet atomically.
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// ReverseTransaction deletes a journal entry and undoes its effect atomically.
	ReverseTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionSvcFacade combines all journal-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
