package handlers_test

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) GetMainWallet(ctx context.Context) (*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}
func (m *MockWalletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, creatorUserID string) (*domain.Wallet, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) DeleteWallet(ctx context.Context, walletID string, userID string) error {
	args := m.Called(ctx, walletID, userID)
	return args.Error(0)
}
func (m *MockWalletService) AdjustBalance(ctx context.Context, repos portsrepo.TxRepositories, walletID string, delta decimal.Decimal, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, repos, walletID, delta, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) ListWalletTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, walletID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ReverseTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
	policy domain.ObligationPolicy
}

func newMockObligationService(p domain.ObligationPolicy) *MockObligationService {
	return &MockObligationService{policy: p}
}

func (m *MockObligationService) Policy() domain.ObligationPolicy { return m.policy }

func (m *MockObligationService) GetObligation(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) ListAll(ctx context.Context) ([]domain.Obligation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) Create(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) CreateForOwners(ctx context.Context, req dto.BulkCreateObligationRequest, creatorUserID string) (*dto.BulkCreateObligationResult, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkCreateObligationResult), args.Error(1)
}
func (m *MockObligationService) Update(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) Delete(ctx context.Context, obligationID string, userID string) error {
	args := m.Called(ctx, obligationID, userID)
	return args.Error(0)
}
func (m *MockObligationService) Settle(ctx context.Context, obligationID string, req dto.SettleObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}
func (m *MockDashboardService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// Ensure mock implements the interface
var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)
