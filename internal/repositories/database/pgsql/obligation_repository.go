package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/membership_ledger/internal/models"
	"github.com/SscSPs/membership_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// ledgerTable describes how one obligation kind is stored. The base and settlement
// columns are shared; extras hold the kind-specific fields.
type ledgerTable struct {
	name      string
	extras    []string
	extraDest func(m *models.Obligation) []any
	extraVals func(m models.Obligation) []any
}

var ledgerTables = map[domain.ObligationKind]ledgerTable{
	domain.Dues: {
		name:      "dues",
		extras:    []string{"period", "due_date"},
		extraDest: func(m *models.Obligation) []any { return []any{&m.Period, &m.DueDate} },
		extraVals: func(m models.Obligation) []any { return []any{m.Period, m.DueDate} },
	},
	domain.InitialFee: {
		name:      "initial_fees",
		extraDest: func(*models.Obligation) []any { return nil },
		extraVals: func(models.Obligation) []any { return nil },
	},
	domain.Donation: {
		name:      "donations",
		extras:    []string{"campaign_name", "campaign_date", "target_amount"},
		extraDest: func(m *models.Obligation) []any { return []any{&m.CampaignName, &m.CampaignDate, &m.TargetAmount} },
		extraVals: func(m models.Obligation) []any { return []any{m.CampaignName, m.CampaignDate, m.TargetAmount} },
	},
}

var obligationBaseColumns = []string{
	"obligation_id", "owner_id", "amount", "status",
	"settled_at", "settlement_method", "wallet_id", "settlement_note",
	"created_at", "created_by", "last_updated_at", "last_updated_by",
}

func tableFor(kind domain.ObligationKind) (ledgerTable, error) {
	t, ok := ledgerTables[kind]
	if !ok {
		return ledgerTable{}, fmt.Errorf("%w: unknown obligation kind %q", apperrors.ErrValidation, kind)
	}
	return t, nil
}

func (t ledgerTable) columns() []string {
	return append(append([]string{}, obligationBaseColumns...), t.extras...)
}

func (t ledgerTable) selectClause() string {
	return "SELECT " + strings.Join(t.columns(), ", ") + " FROM " + t.name
}

func (t ledgerTable) scan(row pgx.Row) (models.Obligation, error) {
	var m models.Obligation
	dest := []any{
		&m.ObligationID, &m.OwnerID, &m.Amount, &m.Status,
		&m.SettledAt, &m.SettlementMethod, &m.WalletID, &m.SettlementNote,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	}
	dest = append(dest, t.extraDest(&m)...)
	err := row.Scan(dest...)
	return m, err
}

func (t ledgerTable) values(m models.Obligation) []any {
	vals := []any{
		m.ObligationID, m.OwnerID, m.Amount, m.Status,
		m.SettledAt, m.SettlementMethod, m.WalletID, m.SettlementNote,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
	return append(vals, t.extraVals(m)...)
}

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ps, ", ")
}

type PgxObligationRepository struct {
	db dbtx
}

func newPgxObligationRepository(db dbtx) *PgxObligationRepository {
	return &PgxObligationRepository{db: db}
}

var (
	_ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)
	_ portsrepo.ObligationTxRepository     = (*PgxObligationRepository)(nil)
)

// SaveObligation inserts a new obligation into its kind's table.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, ob domain.Obligation) error {
	t, err := tableFor(ob.Kind)
	if err != nil {
		return err
	}
	cols := t.columns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", t.name, strings.Join(cols, ", "), placeholders(len(cols)))
	_, err = r.db.Exec(ctx, query, t.values(mapping.ToModelObligation(ob))...)
	return translateError(err, "failed to save obligation "+ob.ObligationID)
}

func (r *PgxObligationRepository) findOne(ctx context.Context, kind domain.ObligationKind, obligationID string, forUpdate bool) (*domain.Obligation, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := t.selectClause() + " WHERE obligation_id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := t.scan(r.db.QueryRow(ctx, query, obligationID))
	if err != nil {
		return nil, translateError(err, "failed to find obligation")
	}
	ob := mapping.ToDomainObligation(kind, m)
	return &ob, nil
}

// FindObligationByID retrieves an obligation of the given kind.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error) {
	return r.findOne(ctx, kind, obligationID, false)
}

// FindObligationByIDForUpdate selects an obligation and locks its row until the
// surrounding transaction ends.
func (r *PgxObligationRepository) FindObligationByIDForUpdate(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error) {
	return r.findOne(ctx, kind, obligationID, true)
}

func (r *PgxObligationRepository) list(ctx context.Context, kind domain.ObligationKind, where string, args ...any) ([]domain.Obligation, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := t.selectClause() + where + " ORDER BY created_at DESC, obligation_id ASC;"
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list "+t.name)
	}
	defer rows.Close()

	var ms []models.Obligation
	for rows.Next() {
		m, err := t.scan(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan "+t.name+" row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed iterating "+t.name+" rows")
	}
	return mapping.ToDomainObligationSlice(kind, ms), nil
}

// ListObligations retrieves every obligation of a kind, newest first.
func (r *PgxObligationRepository) ListObligations(ctx context.Context, kind domain.ObligationKind) ([]domain.Obligation, error) {
	return r.list(ctx, kind, "")
}

// ListObligationsByOwner retrieves one owner's obligations of a kind, newest first.
func (r *PgxObligationRepository) ListObligationsByOwner(ctx context.Context, kind domain.ObligationKind, ownerID string) ([]domain.Obligation, error) {
	return r.list(ctx, kind, " WHERE owner_id = $1", ownerID)
}

// UpdateObligation writes back everything except identity, owner and creation audit.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, ob domain.Obligation) error {
	t, err := tableFor(ob.Kind)
	if err != nil {
		return err
	}
	m := mapping.ToModelObligation(ob)

	sets := []string{
		"amount = $2", "status = $3",
		"settled_at = $4", "settlement_method = $5", "wallet_id = $6", "settlement_note = $7",
		"last_updated_at = $8", "last_updated_by = $9",
	}
	args := []any{
		m.ObligationID, m.Amount, m.Status,
		m.SettledAt, m.SettlementMethod, m.WalletID, m.SettlementNote,
		m.LastUpdatedAt, m.LastUpdatedBy,
	}
	extraVals := t.extraVals(m)
	for i, col := range t.extras {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, extraVals[i])
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE obligation_id = $1;", t.name, strings.Join(sets, ", "))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to update obligation "+ob.ObligationID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteOutstandingObligation deletes the row only while it is in the outstanding status.
func (r *PgxObligationRepository) DeleteOutstandingObligation(ctx context.Context, kind domain.ObligationKind, obligationID string, outstanding domain.ObligationStatus) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE obligation_id = $1 AND status = $2;", t.name)
	tag, err := r.db.Exec(ctx, query, obligationID, string(outstanding))
	if err != nil {
		return translateError(err, "failed to delete obligation "+obligationID)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindObligationByID(ctx, kind, obligationID); findErr != nil {
			return findErr
		}
		return apperrors.ErrInvariantViolation
	}
	return nil
}
