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
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnsureMainWallet makes sure exactly one main wallet exists, creating it with a zero
// balance if none does. It is safe to call repeatedly and from concurrent processes:
// losing an insert race to another instance resolves to the winner's wallet.
func EnsureMainWallet(ctx context.Context, repo portsrepo.WalletRepositoryFacade, creatorID, name string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallets, err := repo.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	for i := range wallets {
		if wallets[i].IsMain {
			logger.Debug("Main wallet present", slog.String("wallet_id", wallets[i].WalletID))
			return &wallets[i], nil
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultMainWalletName
	}
	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		Name:     name,
		Balance:  decimal.Zero,
		IsMain:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := repo.SaveWallet(ctx, wallet); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("create main wallet: %w", err)
		}
		existing, findErr := repo.FindMainWallet(ctx)
		if findErr != nil {
			return nil, fmt.Errorf("re-read main wallet after duplicate insert: %w", findErr)
		}
		logger.Info("Main wallet created concurrently by another instance", slog.String("wallet_id", existing.WalletID))
		return existing, nil
	}

	logger.Info("Main wallet created",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("name", wallet.Name),
		slog.String("created_by", creatorID))
	return &wallet, nil
}
