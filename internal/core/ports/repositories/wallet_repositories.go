package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindMainWallet retrieves the wallet flagged as main.
	FindMainWallet(ctx context.Context) (*domain.Wallet, error)

	// ListWallets retrieves all wallets, main wallet first.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWallet updates a wallet's name and description. Balance and main flag are never touched.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error

	// DeleteWallet removes a wallet.
	DeleteWallet(ctx context.Context, walletID string) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}

// WalletTxRepository defines wallet operations available inside a unit of work.
type WalletTxRepository interface {
	// FindWalletByIDForUpdate selects a wallet and locks it for the rest of the transaction.
	FindWalletByIDForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error)

	// AdjustWalletBalance applies balance = balance + delta and returns the updated wallet.
	AdjustWalletBalance(ctx context.Context, walletID string, delta decimal.Decimal, userID string, now time.Time) (*domain.Wallet, error)
}
