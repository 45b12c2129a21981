package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/utils"
	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

// transactionService records and reverses journal entries.
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionReader
	uow       portsrepo.UnitOfWork
	walletSvc portssvc.WalletBalanceSvc
	summary   summaryInvalidator
	now       func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionReader, uow portsrepo.UnitOfWork, walletSvc portssvc.WalletBalanceSvc, summary summaryInvalidator) portssvc.TransactionSvcFacade {
	if summary == nil {
		summary = noopInvalidator{}
	}
	return &transactionService{
		txnRepo:   txnRepo,
		uow:       uow,
		walletSvc: walletSvc,
		summary:   summary,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		WalletID:        req.WalletID,
		TransactionType: domain.TransactionType(strings.ToUpper(string(req.TransactionType))),
		Amount:          req.Amount,
		Category:        req.Category,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		CreatedAt:       s.now(),
		CreatedBy:       creatorUserID,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !utils.HasAmountScale(txn.Amount) {
		return nil, fmt.Errorf("%w: amount has more than %d decimal places", apperrors.ErrValidation, utils.AmountScale)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Transactions.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
		if _, err := s.walletSvc.AdjustBalance(ctx, repos, txn.WalletID, txn.SignedAmount(), creatorUserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("wallet_id", txn.WalletID))
		return nil, err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("wallet_id", txn.WalletID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionService) ReverseTransaction(ctx context.Context, transactionID string, userID string) error {
	var reversed domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		txn, err := repos.Transactions.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := repos.Transactions.DeleteTransaction(ctx, transactionID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		if _, err := s.walletSvc.AdjustBalance(ctx, repos, txn.WalletID, txn.ReversalAmount(), userID); err != nil {
			return err
		}
		reversed = *txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("wallet_id", reversed.WalletID),
		slog.String("user_id", userID))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := clampPageSize(params.Limit)
	txns, next, err := s.txnRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	resp := dto.ToListTransactionsResponse(txns, next)
	return &resp, nil
}

func (s *transactionService) ListWalletTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := clampPageSize(params.Limit)
	txns, next, err := s.txnRepo.ListTransactionsByWalletID(ctx, walletID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallet transactions",
			slog.String("wallet_id", walletID),
			slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list transactions for wallet %s: %w", walletID, err)
	}
	resp := dto.ToListTransactionsResponse(txns, next)
	return &resp, nil
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		return maxTransactionPageSize
	}
	return limit
}
