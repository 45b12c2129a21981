package pgsql

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/models"
	"github.com/SscSPs/membership_ledger/internal/utils/mapping"
	"github.com/SscSPs/membership_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, wallet_id, transaction_type, amount, category, description, transaction_date, created_at, created_by`

type PgxTransactionRepository struct {
	db dbtx
}

func newPgxTransactionRepository(db dbtx) *PgxTransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var (
	_ portsrepo.TransactionReader       = (*PgxTransactionRepository)(nil)
	_ portsrepo.TransactionTxRepository = (*PgxTransactionRepository)(nil)
)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.WalletID,
		&m.TransactionType,
		&m.Amount,
		&m.Category,
		&m.Description,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveTransaction inserts a journal entry. An unknown wallet surfaces as ErrNotFound
// through the foreign key.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.WalletID,
		m.TransactionType,
		m.Amount,
		m.Category,
		m.Description,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
	)
	return translateError(err, "failed to save transaction "+m.TransactionID)
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, query string, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, translateError(err, "failed to find transaction")
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// FindTransactionByID retrieves a journal entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID)
}

// FindTransactionByIDForUpdate selects a journal entry and locks its row.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID)
}

// DeleteTransaction removes a journal entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return translateError(err, "failed to delete transaction "+transactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTransactions retrieves a page of entries across all wallets, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.page(ctx, "", limit, nextToken)
}

// ListTransactionsByWalletID retrieves a page of entries for one wallet, newest first.
func (r *PgxTransactionRepository) ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.page(ctx, walletID, limit, nextToken)
}

// page fetches limit+1 rows ordered by (transaction_date, created_at) descending to
// learn whether another page exists, and encodes the last returned row as the cursor.
func (r *PgxTransactionRepository) page(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE TRUE`
	args := []any{}
	argPos := 1

	if walletID != "" {
		query += fmt.Sprintf(" AND wallet_id = $%d", argPos)
		args = append(args, walletID)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		query += fmt.Sprintf(" AND (transaction_date, created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, lastDate, lastCreatedAt)
		argPos += 2
	}
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to list transactions")
	}
	defer rows.Close()

	ms := make([]models.Transaction, 0, limit+1)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, translateError(err, "failed to scan transaction row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "failed iterating transaction rows")
	}

	var nextTokenVal *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
	}
	return mapping.ToDomainTransactionSlice(ms), nextTokenVal, nil
}
