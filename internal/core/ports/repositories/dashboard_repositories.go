package repositories

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
)

// DashboardRepository defines read-only rollups over the ledger tables
type DashboardRepository interface {
	GetWalletTotals(ctx context.Context) (domain.WalletTotals, error)
	GetJournalTotals(ctx context.Context) (domain.JournalTotals, error)
	GetObligationTotals(ctx context.Context, policy domain.ObligationPolicy) (domain.ObligationTotals, error)
}
