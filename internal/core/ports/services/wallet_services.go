package services

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallets
type WalletReaderSvc interface {
	// GetWalletByID retrieves a specific wallet.
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// GetMainWallet retrieves the main wallet.
	GetMainWallet(ctx context.Context) (*domain.Wallet, error)

	// ListWallets retrieves all wallets.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
}

// WalletWriterSvc defines write operations for wallets
type WalletWriterSvc interface {
	// CreateWallet creates a new, non-main wallet.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest, creatorUserID string) (*domain.Wallet, error)

	// UpdateWallet changes a wallet's name and/or description.
	UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest, userID string) (*domain.Wallet, error)

	// DeleteWallet removes a wallet; the main wallet can never be deleted.
	DeleteWallet(ctx context.Context, walletID string, userID string) error
}

// WalletBalanceSvc is the balance mutation used by the journal and the obligation ledgers.
type WalletBalanceSvc interface {
	// AdjustBalance applies a signed delta to a wallet as part of the caller's unit of work.
	// It never opens a transaction of its own.
	AdjustBalance(ctx context.Context, repos portsrepo.TxRepositories, walletID string, delta decimal.Decimal, userID string) (*domain.Wallet, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletBalanceSvc
}
