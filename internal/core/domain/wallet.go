package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultMainWalletName is the name given to the wallet created by the main-wallet bootstrap.
const DefaultMainWalletName = "Main Wallet"

// Wallet is a named monetary pool with a persisted balance.
// Balance is derived state: it always equals the signed sum of the journal entries
// and settlement credits applied to the wallet, and is only ever changed by a delta
// inside the same unit of work as its cause.
type Wallet struct {
	WalletID    string          `json:"walletID"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Description string          `json:"description"`
	IsMain      bool            `json:"isMain"`
	AuditFields
}
