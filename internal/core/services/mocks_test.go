package services_test

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock type for the WalletRepositoryFacade interface
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindMainWallet(ctx context.Context) (*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

// MockObligationRepository is a mock type for the ObligationRepositoryFacade interface
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, kind, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligations(ctx context.Context, kind domain.ObligationKind) ([]domain.Obligation, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligationsByOwner(ctx context.Context, kind domain.ObligationKind, ownerID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, kind, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, ob domain.Obligation) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

func (m *MockObligationRepository) DeleteOutstandingObligation(ctx context.Context, kind domain.ObligationKind, obligationID string, outstanding domain.ObligationStatus) error {
	args := m.Called(ctx, kind, obligationID, outstanding)
	return args.Error(0)
}

// MockDashboardRepository is a mock type for the DashboardRepository interface
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetWalletTotals(ctx context.Context) (domain.WalletTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.WalletTotals), args.Error(1)
}

func (m *MockDashboardRepository) GetJournalTotals(ctx context.Context) (domain.JournalTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.JournalTotals), args.Error(1)
}

func (m *MockDashboardRepository) GetObligationTotals(ctx context.Context, policy domain.ObligationPolicy) (domain.ObligationTotals, error) {
	args := m.Called(ctx, policy)
	return args.Get(0).(domain.ObligationTotals), args.Error(1)
}

// MockSummaryCache is a mock type for the SummaryCache interface
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(ctx context.Context, summary *domain.DashboardSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) DeleteSummary(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
