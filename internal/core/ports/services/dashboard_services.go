package services

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
)

// DashboardSvc provides read-only rollups for the back-office dashboard
type DashboardSvc interface {
	GetSummary(ctx context.Context) (*domain.DashboardSummary, error)
	// Invalidate drops any cached summary; called after ledger mutations.
	Invalidate(ctx context.Context)
}
