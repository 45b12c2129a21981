package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

// summaryInvalidator is the slice of the dashboard service that writers need.
type summaryInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
	summary    summaryInvalidator
	now        func() time.Time
}

// WalletServiceOption is a functional option for configuring the wallet service
type WalletServiceOption func(*walletService)

// WithWalletSummaryInvalidator makes wallet writes drop the cached dashboard summary.
func WithWalletSummaryInvalidator(inv summaryInvalidator) WalletServiceOption {
	return func(s *walletService) {
		if inv != nil {
			s.summary = inv
		}
	}
}

// NewWalletService creates a new wallet service with the provided options
func NewWalletService(repo portsrepo.WalletRepositoryFacade, options ...WalletServiceOption) portssvc.WalletSvcFacade {
	svc := &walletService{
		walletRepo: repo,
		summary:    noopInvalidator{},
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, creatorUserID string) (*domain.Wallet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}

	balance := decimal.Zero
	if req.InitialBalance != nil {
		if req.InitialBalance.IsNegative() {
			return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrValidation)
		}
		if !utils.HasAmountScale(*req.InitialBalance) {
			return nil, fmt.Errorf("%w: initial balance has more than %d decimal places", apperrors.ErrValidation, utils.AmountScale)
		}
		balance = *req.InitialBalance
	}

	now := s.now()
	wallet := domain.Wallet{
		WalletID:    uuid.NewString(),
		Name:        name,
		Balance:     balance,
		Description: req.Description,
		IsMain:      false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		s.LogError(ctx, err, "Failed to save wallet", slog.String("wallet_id", wallet.WalletID))
		return nil, err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Wallet created successfully",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("initial_balance", balance.String()))
	return &wallet, nil
}

func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find wallet by ID", slog.String("wallet_id", walletID))
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) GetMainWallet(ctx context.Context) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindMainWallet(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to find main wallet")
		return nil, err
	}
	return wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets")
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	if wallets == nil {
		return []domain.Wallet{}, nil
	}
	return wallets, nil
}

func (s *walletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find wallet for update", slog.String("wallet_id", walletID))
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: wallet name cannot be empty", apperrors.ErrValidation)
		}
		if name != wallet.Name {
			wallet.Name = name
			updated = true
		}
	}
	if req.Description != nil && *req.Description != wallet.Description {
		wallet.Description = *req.Description
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields changed on wallet update", slog.String("wallet_id", walletID))
		return wallet, nil
	}

	wallet.LastUpdatedAt = s.now()
	wallet.LastUpdatedBy = userID
	if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
		s.LogError(ctx, err, "Failed to update wallet", slog.String("wallet_id", walletID))
		return nil, err
	}

	s.LogInfo(ctx, "Wallet updated successfully", slog.String("wallet_id", walletID))
	return wallet, nil
}

func (s *walletService) DeleteWallet(ctx context.Context, walletID string, userID string) error {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find wallet for delete", slog.String("wallet_id", walletID))
		return err
	}
	if wallet.IsMain {
		s.LogInfo(ctx, "Refused to delete main wallet",
			slog.String("wallet_id", walletID),
			slog.String("user_id", userID))
		return fmt.Errorf("%w: the main wallet cannot be deleted", apperrors.ErrInvariantViolation)
	}

	if err := s.walletRepo.DeleteWallet(ctx, walletID); err != nil {
		s.LogError(ctx, err, "Failed to delete wallet", slog.String("wallet_id", walletID))
		return err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Wallet deleted",
		slog.String("wallet_id", walletID),
		slog.String("user_id", userID))
	return nil
}

// AdjustBalance applies delta to the wallet through the caller's transaction-bound repositories.
func (s *walletService) AdjustBalance(ctx context.Context, repos portsrepo.TxRepositories, walletID string, delta decimal.Decimal, userID string) (*domain.Wallet, error) {
	if walletID == "" {
		return nil, fmt.Errorf("%w: wallet ID is required", apperrors.ErrValidation)
	}
	wallet, err := repos.Wallets.AdjustWalletBalance(ctx, walletID, delta, userID, s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("wallet %s: %w", walletID, err)
		}
		s.LogError(ctx, err, "Failed to adjust wallet balance",
			slog.String("wallet_id", walletID),
			slog.String("delta", delta.String()))
		return nil, err
	}
	s.LogDebug(ctx, "Wallet balance adjusted",
		slog.String("wallet_id", walletID),
		slog.String("delta", delta.String()),
		slog.String("balance", wallet.Balance.String()))
	return wallet, nil
}
