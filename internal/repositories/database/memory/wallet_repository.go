package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// WalletRepository implements portsrepo.WalletRepositoryFacade.
type WalletRepository struct {
	store *Store
}

var _ portsrepo.WalletRepositoryFacade = (*WalletRepository)(nil)

func (r *WalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	var (
		w  domain.Wallet
		ok bool
	)
	r.store.read(func(st *state) { w, ok = st.wallets[walletID] })
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &w, nil
}

func (r *WalletRepository) FindMainWallet(ctx context.Context) (*domain.Wallet, error) {
	var found *domain.Wallet
	r.store.read(func(st *state) {
		for _, w := range st.wallets {
			if w.IsMain {
				w := w
				found = &w
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r *WalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	r.store.read(func(st *state) {
		wallets = make([]domain.Wallet, 0, len(st.wallets))
		for _, w := range st.wallets {
			wallets = append(wallets, w)
		}
	})
	sort.Slice(wallets, func(i, j int) bool {
		if wallets[i].IsMain != wallets[j].IsMain {
			return wallets[i].IsMain
		}
		if !wallets[i].CreatedAt.Equal(wallets[j].CreatedAt) {
			return wallets[i].CreatedAt.Before(wallets[j].CreatedAt)
		}
		return wallets[i].WalletID < wallets[j].WalletID
	})
	return wallets, nil
}

func (r *WalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	return r.store.write(func(st *state) error {
		if _, exists := st.wallets[wallet.WalletID]; exists {
			return apperrors.ErrDuplicate
		}
		if wallet.IsMain {
			for _, w := range st.wallets {
				if w.IsMain {
					return apperrors.ErrDuplicate
				}
			}
		}
		st.wallets[wallet.WalletID] = wallet
		return nil
	})
}

func (r *WalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	return r.store.write(func(st *state) error {
		existing, ok := st.wallets[wallet.WalletID]
		if !ok {
			return apperrors.ErrNotFound
		}
		existing.Name = wallet.Name
		existing.Description = wallet.Description
		existing.LastUpdatedAt = wallet.LastUpdatedAt
		existing.LastUpdatedBy = wallet.LastUpdatedBy
		st.wallets[wallet.WalletID] = existing
		return nil
	})
}

// DeleteWallet removes the wallet and, like the foreign key cascade in PostgreSQL,
// its journal entries.
func (r *WalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.wallets[walletID]; !ok {
			return apperrors.ErrNotFound
		}
		delete(st.wallets, walletID)
		for id, txn := range st.transactions {
			if txn.WalletID == walletID {
				delete(st.transactions, id)
			}
		}
		return nil
	})
}

func (t *txRepos) FindWalletByIDForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error) {
	w, ok := t.st.wallets[walletID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &w, nil
}

func (t *txRepos) AdjustWalletBalance(ctx context.Context, walletID string, delta decimal.Decimal, userID string, now time.Time) (*domain.Wallet, error) {
	w, ok := t.st.wallets[walletID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	w.Balance = w.Balance.Add(delta)
	w.LastUpdatedAt = now
	w.LastUpdatedBy = userID
	t.st.wallets[walletID] = w
	return &w, nil
}
