package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWallet(t *testing.T, repos portsrepo.RepositoryProvider, id string, isMain bool) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repos.WalletRepo.SaveWallet(context.Background(), domain.Wallet{
		WalletID:    id,
		Name:        id,
		Balance:     decimal.Zero,
		IsMain:      isMain,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}))
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "w1", false)

	err := repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		_, err := tx.Wallets.AdjustWalletBalance(ctx, "w1", decimal.NewFromInt(500), "u1", time.Now())
		return err
	})
	require.NoError(t, err)

	w, err := repos.WalletRepo.FindWalletByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "u1", w.LastUpdatedBy)
}

func TestDo_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "w1", false)
	boom := errors.New("boom")

	err := repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if _, err := tx.Wallets.AdjustWalletBalance(ctx, "w1", decimal.NewFromInt(500), "u1", time.Now()); err != nil {
			return err
		}
		if err := tx.Transactions.SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", WalletID: "w1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := repos.WalletRepo.FindWalletByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero(), "balance change must not survive a failed unit of work")
	_, err = repos.TransactionRepo.FindTransactionByID(ctx, "t1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDo_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().Do(ctx, func(context.Context, portsrepo.TxRepositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAdjustWalletBalance_UnknownWallet(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	err := repos.UnitOfWork.Do(context.Background(), func(ctx context.Context, tx portsrepo.TxRepositories) error {
		_, err := tx.Wallets.AdjustWalletBalance(ctx, "missing", decimal.NewFromInt(1), "u1", time.Now())
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveWallet_SingleMain(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "main", true)

	err := repos.WalletRepo.SaveWallet(context.Background(), domain.Wallet{WalletID: "other", IsMain: true})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	main, err := repos.WalletRepo.FindMainWallet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", main.WalletID)
}

func TestListWallets_MainFirst(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "a", false)
	seedWallet(t, repos, "main", true)
	seedWallet(t, repos, "b", false)

	wallets, err := repos.WalletRepo.ListWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	assert.Equal(t, "main", wallets[0].WalletID)
}

func TestDeleteWallet_CascadesTransactions(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "w1", false)
	seedWallet(t, repos, "w2", false)

	require.NoError(t, repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if err := tx.Transactions.SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", WalletID: "w1"}); err != nil {
			return err
		}
		return tx.Transactions.SaveTransaction(ctx, domain.Transaction{TransactionID: "t2", WalletID: "w2"})
	}))

	require.NoError(t, repos.WalletRepo.DeleteWallet(ctx, "w1"))

	_, err := repos.TransactionRepo.FindTransactionByID(ctx, "t1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repos.TransactionRepo.FindTransactionByID(ctx, "t2")
	assert.NoError(t, err)
}

func TestSaveTransaction_UnknownWallet(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	err := repos.UnitOfWork.Do(context.Background(), func(ctx context.Context, tx portsrepo.TxRepositories) error {
		return tx.Transactions.SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", WalletID: "nope"})
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListTransactions_Pagination(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "w1", false)
	seedWallet(t, repos, "w2", false)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		for i := 0; i < 5; i++ {
			wallet := "w1"
			if i == 2 {
				wallet = "w2"
			}
			err := tx.Transactions.SaveTransaction(ctx, domain.Transaction{
				TransactionID:   fmt.Sprintf("t%d", i),
				WalletID:        wallet,
				TransactionType: domain.Income,
				Amount:          decimal.NewFromInt(10),
				TransactionDate: base.AddDate(0, 0, i),
				CreatedAt:       base.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}))

	page1, next, err := repos.TransactionRepo.ListTransactions(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, "t4", page1[0].TransactionID)
	assert.Equal(t, "t3", page1[1].TransactionID)

	page2, next, err := repos.TransactionRepo.ListTransactions(ctx, 2, next)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "t2", page2[0].TransactionID)
	require.NotNil(t, next)

	page3, next, err := repos.TransactionRepo.ListTransactions(ctx, 2, next)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "t0", page3[0].TransactionID)
	assert.Nil(t, next)

	walletPage, next, err := repos.TransactionRepo.ListTransactionsByWalletID(ctx, "w2", 10, nil)
	require.NoError(t, err)
	require.Len(t, walletPage, 1)
	assert.Equal(t, "t2", walletPage[0].TransactionID)
	assert.Nil(t, next)
}

func TestListTransactions_BadToken(t *testing.T) {
	repos := NewRepositoryProvider(NewStore())
	bad := "%%%"
	_, _, err := repos.TransactionRepo.ListTransactions(context.Background(), 10, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteOutstandingObligation(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	outstanding := domain.Obligation{ObligationID: "o1", Kind: domain.Dues, Status: domain.StatusUnpaid}
	settled := domain.Obligation{ObligationID: "o2", Kind: domain.Dues, Status: domain.StatusPaid}
	require.NoError(t, repos.ObligationRepo.SaveObligation(ctx, outstanding))
	require.NoError(t, repos.ObligationRepo.SaveObligation(ctx, settled))

	assert.NoError(t, repos.ObligationRepo.DeleteOutstandingObligation(ctx, domain.Dues, "o1", domain.StatusUnpaid))
	assert.ErrorIs(t, repos.ObligationRepo.DeleteOutstandingObligation(ctx, domain.Dues, "o1", domain.StatusUnpaid), apperrors.ErrNotFound)
	assert.ErrorIs(t, repos.ObligationRepo.DeleteOutstandingObligation(ctx, domain.Dues, "o2", domain.StatusUnpaid), apperrors.ErrInvariantViolation)
}

func TestObligations_KindsAreSeparate(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	require.NoError(t, repos.ObligationRepo.SaveObligation(ctx, domain.Obligation{ObligationID: "o1", Kind: domain.Dues, OwnerID: "m1"}))

	_, err := repos.ObligationRepo.FindObligationByID(ctx, domain.Donation, "o1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	obs, err := repos.ObligationRepo.ListObligationsByOwner(ctx, domain.Dues, "m1")
	require.NoError(t, err)
	assert.Len(t, obs, 1)
}

func TestDashboardTotals(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider(NewStore())
	seedWallet(t, repos, "main", true)
	seedWallet(t, repos, "w2", false)

	require.NoError(t, repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if _, err := tx.Wallets.AdjustWalletBalance(ctx, "main", decimal.NewFromInt(300), "u", time.Now()); err != nil {
			return err
		}
		_, err := tx.Wallets.AdjustWalletBalance(ctx, "w2", decimal.NewFromInt(200), "u", time.Now())
		return err
	}))
	require.NoError(t, repos.ObligationRepo.SaveObligation(ctx, domain.Obligation{ObligationID: "d1", Kind: domain.Donation, Status: domain.StatusPending, Amount: decimal.NewFromInt(70)}))
	require.NoError(t, repos.ObligationRepo.SaveObligation(ctx, domain.Obligation{ObligationID: "d2", Kind: domain.Donation, Status: domain.StatusCollected, Amount: decimal.NewFromInt(30)}))

	wt, err := repos.DashboardRepo.GetWalletTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), wt.WalletCount)
	assert.True(t, wt.TotalBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, wt.MainWalletBalance.Equal(decimal.NewFromInt(300)))

	ot, err := repos.DashboardRepo.GetObligationTotals(ctx, domain.DonationPolicy)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ot.OutstandingCount)
	assert.True(t, ot.OutstandingAmount.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, int64(1), ot.SettledCount)
	assert.True(t, ot.SettledAmount.Equal(decimal.NewFromInt(30)))
}
