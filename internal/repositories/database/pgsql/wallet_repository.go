package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/models"
	"github.com/SscSPs/membership_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `wallet_id, name, balance, description, is_main, created_at, created_by, last_updated_at, last_updated_by`

type PgxWalletRepository struct {
	db dbtx
}

func newPgxWalletRepository(db dbtx) *PgxWalletRepository {
	return &PgxWalletRepository{db: db}
}

var (
	_ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)
	_ portsrepo.WalletTxRepository     = (*PgxWalletRepository)(nil)
)

func scanWallet(row pgx.Row) (models.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.Name,
		&m.Balance,
		&m.Description,
		&m.IsMain,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxWalletRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Wallet, error) {
	m, err := scanWallet(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "failed to find wallet")
	}
	w := mapping.ToDomainWallet(m)
	return &w, nil
}

// SaveWallet inserts a new wallet. A second main wallet trips the partial unique
// index on is_main and surfaces as ErrDuplicate.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.WalletID,
		m.Name,
		m.Balance,
		m.Description,
		m.IsMain,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "failed to save wallet "+m.WalletID)
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return r.findOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1;`, walletID)
}

// FindMainWallet retrieves the wallet flagged as main.
func (r *PgxWalletRepository) FindMainWallet(ctx context.Context) (*domain.Wallet, error) {
	return r.findOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE is_main;`)
}

// ListWallets retrieves all wallets, main wallet first, then by creation time.
func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY is_main DESC, created_at ASC, wallet_id ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to list wallets")
	}
	defer rows.Close()

	var ms []models.Wallet
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan wallet row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed iterating wallet rows")
	}
	return mapping.ToDomainWalletSlice(ms), nil
}

// UpdateWallet updates name and description only.
func (r *PgxWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE wallet_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, wallet.WalletID, wallet.Name, wallet.Description, wallet.LastUpdatedAt, wallet.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to update wallet "+wallet.WalletID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWallet removes a non-main wallet; its transactions go with it via ON DELETE CASCADE.
func (r *PgxWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1 AND NOT is_main;`, walletID)
	if err != nil {
		return translateError(err, "failed to delete wallet "+walletID)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindWalletByID(ctx, walletID); findErr != nil {
			return findErr
		}
		return apperrors.ErrInvariantViolation
	}
	return nil
}

// FindWalletByIDForUpdate selects a wallet and locks its row.
func (r *PgxWalletRepository) FindWalletByIDForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return r.findOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1 FOR UPDATE;`, walletID)
}

// AdjustWalletBalance applies a relative delta; concurrent adjustments serialize on the row lock.
func (r *PgxWalletRepository) AdjustWalletBalance(ctx context.Context, walletID string, delta decimal.Decimal, userID string, now time.Time) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1
		RETURNING ` + walletColumns + `;
	`
	return r.findOne(ctx, query, walletID, delta, now, userID)
}
