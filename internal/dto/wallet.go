package dto

import (
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name           string           `json:"name" binding:"required,max=100"`
	InitialBalance *decimal.Decimal `json:"initialBalance"` // Optional, defaults to zero
	Description    string           `json:"description" binding:"max=500"`
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateWalletRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID      string          `json:"walletID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Description   string          `json:"description"`
	IsMain        bool            `json:"isMain"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:      w.WalletID,
		Name:          w.Name,
		Balance:       w.Balance,
		Description:   w.Description,
		IsMain:        w.IsMain,
		CreatedAt:     w.CreatedAt,
		CreatedBy:     w.CreatedBy,
		LastUpdatedAt: w.LastUpdatedAt,
		LastUpdatedBy: w.LastUpdatedBy,
	}
}

// ListWalletsResponse wraps the list of wallets.
type ListWalletsResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

// ToListWalletsResponse converts a slice of domain.Wallet to ListWalletsResponse
func ToListWalletsResponse(wallets []domain.Wallet) ListWalletsResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return ListWalletsResponse{Wallets: res}
}
