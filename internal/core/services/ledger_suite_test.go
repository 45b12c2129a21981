package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/core/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const adminID = "admin-1"

// ledgerSuite wires the real services over the in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
	main  *domain.Wallet
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = memory.NewRepositoryProvider(memory.NewStore())
	s.svc = services.NewServiceContainer(s.repos, nil)

	main, err := services.EnsureMainWallet(s.ctx, s.repos.WalletRepo, "system", domain.DefaultMainWalletName)
	s.Require().NoError(err)
	s.main = main
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func (s *ledgerSuite) balanceOf(walletID string) decimal.Decimal {
	w, err := s.svc.Wallet.GetWalletByID(s.ctx, walletID)
	s.Require().NoError(err)
	return w.Balance
}

func (s *ledgerSuite) requireBalance(walletID string, want int64) {
	got := s.balanceOf(walletID)
	s.Truef(got.Equal(dec(want)), "wallet %s balance: want %d, got %s", walletID, want, got)
}

func (s *ledgerSuite) newWallet(name string) *domain.Wallet {
	w, err := s.svc.Wallet.CreateWallet(s.ctx, dto.CreateWalletRequest{Name: name}, adminID)
	s.Require().NoError(err)
	return w
}

func (s *ledgerSuite) record(walletID string, typ domain.TransactionType, amount int64) *domain.Transaction {
	txn, err := s.svc.Transaction.RecordTransaction(s.ctx, dto.CreateTransactionRequest{
		WalletID:        walletID,
		TransactionType: typ,
		Amount:          dec(amount),
		Category:        "general",
		TransactionDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}, adminID)
	s.Require().NoError(err)
	return txn
}

func settleReq(walletID string) dto.SettleObligationRequest {
	return dto.SettleObligationRequest{
		SettledAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Method:    domain.MethodCash,
		WalletID:  walletID,
	}
}
