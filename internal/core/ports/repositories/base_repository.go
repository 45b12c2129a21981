package repositories

import (
	"context"
)

// TxRepositories exposes the repository operations that must run inside an open
// unit of work. Everything done through one TxRepositories value commits or rolls
// back together.
type TxRepositories struct {
	Wallets      WalletTxRepository
	Transactions TransactionTxRepository
	Obligations  ObligationTxRepository
}

// UnitOfWork runs a function inside a single database transaction.
type UnitOfWork interface {
	// Do begins a transaction, calls fn with transaction-bound repositories, and
	// commits if fn returns nil. Any error from fn rolls the transaction back and is
	// returned unchanged.
	Do(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
