package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/utils/pagination"
)

// TransactionRepository implements portsrepo.TransactionReader.
type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionReader = (*TransactionRepository)(nil)

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var (
		txn domain.Transaction
		ok  bool
	)
	r.store.read(func(st *state) { txn, ok = st.transactions[transactionID] })
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.page(limit, nextToken, func(domain.Transaction) bool { return true })
}

func (r *TransactionRepository) ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.page(limit, nextToken, func(t domain.Transaction) bool { return t.WalletID == walletID })
}

// page returns up to limit entries newest first, starting after the cursor.
func (r *TransactionRepository) page(limit int, nextToken *string, keep func(domain.Transaction) bool) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := keep
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		filter = func(t domain.Transaction) bool {
			return keep(t) && pagination.After(t.TransactionDate, t.CreatedAt, lastDate, lastCreatedAt)
		}
	}

	var txns []domain.Transaction
	r.store.read(func(st *state) {
		for _, t := range st.transactions {
			if filter(t) {
				txns = append(txns, t)
			}
		}
	})
	sort.Slice(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if len(txns) <= limit {
		if txns == nil {
			txns = []domain.Transaction{}
		}
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[limit-1]
	token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
	return txns, &token, nil
}

func (t *txRepos) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, exists := t.st.transactions[txn.TransactionID]; exists {
		return apperrors.ErrDuplicate
	}
	if _, ok := t.st.wallets[txn.WalletID]; !ok {
		return apperrors.NewAppError(http.StatusNotFound, "wallet does not exist", fmt.Errorf("wallet %s: %w", txn.WalletID, apperrors.ErrNotFound))
	}
	t.st.transactions[txn.TransactionID] = txn
	return nil
}

func (t *txRepos) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, ok := t.st.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (t *txRepos) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, ok := t.st.transactions[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(t.st.transactions, transactionID)
	return nil
}
