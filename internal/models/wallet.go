package models

import "github.com/shopspring/decimal"

// Wallet is a row of the wallets table.
type Wallet struct {
	WalletID    string          `db:"wallet_id"`
	Name        string          `db:"name"`
	Balance     decimal.Decimal `db:"balance"`
	Description string          `db:"description"`
	IsMain      bool            `db:"is_main"`
	AuditFields
}
