package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
)

type PgxDashboardRepository struct {
	db dbtx
}

func newPgxDashboardRepository(db dbtx) *PgxDashboardRepository {
	return &PgxDashboardRepository{db: db}
}

var _ portsrepo.DashboardRepository = (*PgxDashboardRepository)(nil)

func (r *PgxDashboardRepository) GetWalletTotals(ctx context.Context) (domain.WalletTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(balance), 0),
		       COALESCE(SUM(balance) FILTER (WHERE is_main), 0)
		FROM wallets;
	`
	var t domain.WalletTotals
	if err := r.db.QueryRow(ctx, query).Scan(&t.WalletCount, &t.TotalBalance, &t.MainWalletBalance); err != nil {
		return domain.WalletTotals{}, translateError(err, "failed to total wallets")
	}
	return t, nil
}

func (r *PgxDashboardRepository) GetJournalTotals(ctx context.Context) (domain.JournalTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'INCOME'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'EXPENSE'), 0)
		FROM transactions;
	`
	var t domain.JournalTotals
	if err := r.db.QueryRow(ctx, query).Scan(&t.TransactionCount, &t.TotalIncome, &t.TotalExpense); err != nil {
		return domain.JournalTotals{}, translateError(err, "failed to total transactions")
	}
	return t, nil
}

func (r *PgxDashboardRepository) GetObligationTotals(ctx context.Context, policy domain.ObligationPolicy) (domain.ObligationTotals, error) {
	table, err := tableFor(policy.Kind)
	if err != nil {
		return domain.ObligationTotals{}, err
	}
	query := fmt.Sprintf(`
		SELECT COUNT(*) FILTER (WHERE status = $1),
		       COALESCE(SUM(amount) FILTER (WHERE status = $1), 0),
		       COUNT(*) FILTER (WHERE status = $2),
		       COALESCE(SUM(amount) FILTER (WHERE status = $2), 0)
		FROM %s;
	`, table.name)
	t := domain.ObligationTotals{Kind: policy.Kind}
	err = r.db.QueryRow(ctx, query, string(policy.OutstandingStatus), string(policy.SettledStatus)).
		Scan(&t.OutstandingCount, &t.OutstandingAmount, &t.SettledCount, &t.SettledAmount)
	if err != nil {
		return domain.ObligationTotals{}, translateError(err, "failed to total "+table.name)
	}
	return t, nil
}
