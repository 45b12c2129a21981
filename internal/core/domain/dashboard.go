package domain

import "github.com/shopspring/decimal"

// ObligationTotals summarises one obligation ledger.
type ObligationTotals struct {
	Kind              ObligationKind  `json:"kind"`
	OutstandingCount  int64           `json:"outstandingCount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	SettledCount      int64           `json:"settledCount"`
	SettledAmount     decimal.Decimal `json:"settledAmount"`
}

// WalletTotals summarises the wallet store.
type WalletTotals struct {
	WalletCount       int64           `json:"walletCount"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	MainWalletBalance decimal.Decimal `json:"mainWalletBalance"`
}

// JournalTotals summarises the transaction journal.
type JournalTotals struct {
	TransactionCount int64           `json:"transactionCount"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
}

// DashboardSummary is the read-only rollup shown on the back-office dashboard.
type DashboardSummary struct {
	Wallets     WalletTotals       `json:"wallets"`
	Journal     JournalTotals      `json:"journal"`
	Obligations []ObligationTotals `json:"obligations"`
}
