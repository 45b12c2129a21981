package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// SummaryCache stores the last computed dashboard summary.
type SummaryCache interface {
	// GetSummary returns (nil, nil) on a cache miss.
	GetSummary(ctx context.Context) (*domain.DashboardSummary, error)
	SetSummary(ctx context.Context, summary *domain.DashboardSummary) error
	DeleteSummary(ctx context.Context) error
}

type dashboardService struct {
	BaseService
	repo     portsrepo.DashboardRepository
	cache    SummaryCache
	policies []domain.ObligationPolicy
}

// NewDashboardService creates the dashboard aggregator. cache may be nil.
func NewDashboardService(repo portsrepo.DashboardRepository, cache SummaryCache) portssvc.DashboardSvc {
	return &dashboardService{
		repo:     repo,
		cache:    cache,
		policies: []domain.ObligationPolicy{domain.DuesPolicy, domain.InitialFeePolicy, domain.DonationPolicy},
	}
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSummary(ctx)
		if err != nil {
			s.LogError(ctx, err, "Dashboard cache read failed, computing summary")
		} else if cached != nil {
			return cached, nil
		}
	}

	summary := &domain.DashboardSummary{
		Obligations: make([]domain.ObligationTotals, len(s.policies)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.repo.GetWalletTotals(gctx)
		if err != nil {
			return err
		}
		summary.Wallets = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.repo.GetJournalTotals(gctx)
		if err != nil {
			return err
		}
		summary.Journal = totals
		return nil
	})
	for i, policy := range s.policies {
		i, policy := i, policy
		g.Go(func() error {
			totals, err := s.repo.GetObligationTotals(gctx, policy)
			if err != nil {
				return err
			}
			summary.Obligations[i] = totals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute dashboard summary")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSummary(ctx, summary); err != nil {
			s.LogError(ctx, err, "Failed to cache dashboard summary")
		}
	}
	return summary, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteSummary(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate dashboard summary", slog.String("cache", "dashboard"))
	}
}
