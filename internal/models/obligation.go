package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is a row of one of the dues, initial_fees or donations tables.
// Kind-specific and settlement columns are nullable.
type Obligation struct {
	ObligationID string          `db:"obligation_id"`
	OwnerID      string          `db:"owner_id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`

	// dues
	Period  *string    `db:"period"`
	DueDate *time.Time `db:"due_date"`

	// donations
	CampaignName *string             `db:"campaign_name"`
	CampaignDate *time.Time          `db:"campaign_date"`
	TargetAmount decimal.NullDecimal `db:"target_amount"`

	SettledAt        *time.Time `db:"settled_at"`
	SettlementMethod *string    `db:"settlement_method"`
	WalletID         *string    `db:"wallet_id"`
	SettlementNote   *string    `db:"settlement_note"`

	AuditFields
}
