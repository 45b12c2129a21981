package memory

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// DashboardRepository implements portsrepo.DashboardRepository.
type DashboardRepository struct {
	store *Store
}

var _ portsrepo.DashboardRepository = (*DashboardRepository)(nil)

func (r *DashboardRepository) GetWalletTotals(ctx context.Context) (domain.WalletTotals, error) {
	totals := domain.WalletTotals{TotalBalance: decimal.Zero, MainWalletBalance: decimal.Zero}
	r.store.read(func(st *state) {
		for _, w := range st.wallets {
			totals.WalletCount++
			totals.TotalBalance = totals.TotalBalance.Add(w.Balance)
			if w.IsMain {
				totals.MainWalletBalance = w.Balance
			}
		}
	})
	return totals, nil
}

func (r *DashboardRepository) GetJournalTotals(ctx context.Context) (domain.JournalTotals, error) {
	totals := domain.JournalTotals{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	r.store.read(func(st *state) {
		for _, t := range st.transactions {
			totals.TransactionCount++
			switch t.TransactionType {
			case domain.Income:
				totals.TotalIncome = totals.TotalIncome.Add(t.Amount)
			case domain.Expense:
				totals.TotalExpense = totals.TotalExpense.Add(t.Amount)
			}
		}
	})
	return totals, nil
}

func (r *DashboardRepository) GetObligationTotals(ctx context.Context, policy domain.ObligationPolicy) (domain.ObligationTotals, error) {
	totals := domain.ObligationTotals{
		Kind:              policy.Kind,
		OutstandingAmount: decimal.Zero,
		SettledAmount:     decimal.Zero,
	}
	var err error
	r.store.read(func(st *state) {
		var m map[string]domain.Obligation
		if m, err = ledger(st, policy.Kind); err != nil {
			return
		}
		for _, o := range m {
			switch o.Status {
			case policy.OutstandingStatus:
				totals.OutstandingCount++
				totals.OutstandingAmount = totals.OutstandingAmount.Add(o.Amount)
			case policy.SettledStatus:
				totals.SettledCount++
				totals.SettledAmount = totals.SettledAmount.Add(o.Amount)
			}
		}
	})
	return totals, err
}
