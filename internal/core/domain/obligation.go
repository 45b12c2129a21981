package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// ObligationKind identifies which ledger an obligation belongs to.
type ObligationKind string

const (
	Dues       ObligationKind = "DUES"
	InitialFee ObligationKind = "INITIAL_FEE"
	Donation   ObligationKind = "DONATION"
)

// ObligationStatus is the lifecycle state of an obligation. Labels differ per kind.
type ObligationStatus string

const (
	StatusUnpaid    ObligationStatus = "UNPAID"
	StatusPaid      ObligationStatus = "PAID"
	StatusPending   ObligationStatus = "PENDING"
	StatusCollected ObligationStatus = "COLLECTED"
)

// SettlementMethod records how an obligation was settled.
type SettlementMethod string

const (
	MethodCash         SettlementMethod = "CASH"
	MethodBankTransfer SettlementMethod = "BANK_TRANSFER"
	MethodEWallet      SettlementMethod = "E_WALLET"
	MethodOther        SettlementMethod = "OTHER"
)

// IsValid reports whether m is a known settlement method.
func (m SettlementMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodEWallet, MethodOther:
		return true
	}
	return false
}

// ObligationPolicy captures everything that differs between the obligation ledgers.
// The settlement state machine itself is shared.
type ObligationPolicy struct {
	Kind              ObligationKind
	OutstandingStatus ObligationStatus
	SettledStatus     ObligationStatus
	// AmountMutable allows editing the amount while the obligation is outstanding.
	AmountMutable bool
	// AllowsOverride allows settling for a different amount than the stored one.
	AllowsOverride bool
}

var (
	DuesPolicy = ObligationPolicy{
		Kind:              Dues,
		OutstandingStatus: StatusUnpaid,
		SettledStatus:     StatusPaid,
	}
	InitialFeePolicy = ObligationPolicy{
		Kind:              InitialFee,
		OutstandingStatus: StatusUnpaid,
		SettledStatus:     StatusPaid,
	}
	DonationPolicy = ObligationPolicy{
		Kind:              Donation,
		OutstandingStatus: StatusPending,
		SettledStatus:     StatusCollected,
		AmountMutable:     true,
		AllowsOverride:    true,
	}
)

// PolicyFor returns the policy for a kind.
func PolicyFor(kind ObligationKind) (ObligationPolicy, error) {
	switch kind {
	case Dues:
		return DuesPolicy, nil
	case InitialFee:
		return InitialFeePolicy, nil
	case Donation:
		return DonationPolicy, nil
	}
	return ObligationPolicy{}, fmt.Errorf("unknown obligation kind %q", kind)
}

// IsKnownStatus reports whether s is one of the policy's two states.
func (p ObligationPolicy) IsKnownStatus(s ObligationStatus) bool {
	return s == p.OutstandingStatus || s == p.SettledStatus
}

// Settlement is the metadata recorded when an obligation is settled.
type Settlement struct {
	SettledAt time.Time        `json:"settledAt"`
	Method    SettlementMethod `json:"method"`
	WalletID  string           `json:"walletID"`
	Note      string           `json:"note"`
}

// ObligationDetails holds the kind-specific fields. Only the fields relevant to the
// obligation's kind are set.
type ObligationDetails struct {
	// Dues
	Period  string     `json:"period,omitempty"` // YYYY-MM
	DueDate *time.Time `json:"dueDate,omitempty"`
	// Donation
	CampaignName string           `json:"campaignName,omitempty"`
	CampaignDate *time.Time       `json:"campaignDate,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
}

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidPeriod reports whether p is a YYYY-MM period string.
func IsValidPeriod(p string) bool {
	return periodPattern.MatchString(p)
}

// Validate checks that the details carry what the kind needs and nothing foreign.
func (d ObligationDetails) Validate(kind ObligationKind) error {
	switch kind {
	case Dues:
		if !IsValidPeriod(d.Period) {
			return fmt.Errorf("dues period must be in YYYY-MM format")
		}
		if d.CampaignName != "" || d.CampaignDate != nil || d.TargetAmount != nil {
			return fmt.Errorf("campaign fields are only valid for donations")
		}
	case InitialFee:
		if d.Period != "" || d.DueDate != nil || d.CampaignName != "" || d.CampaignDate != nil || d.TargetAmount != nil {
			return fmt.Errorf("initial fees take no extra fields")
		}
	case Donation:
		if d.CampaignName == "" {
			return fmt.Errorf("campaign name is required")
		}
		if d.Period != "" || d.DueDate != nil {
			return fmt.Errorf("period fields are only valid for dues")
		}
		if d.TargetAmount != nil && !d.TargetAmount.IsPositive() {
			return fmt.Errorf("target amount must be positive")
		}
	default:
		return fmt.Errorf("unknown obligation kind %q", kind)
	}
	return nil
}

// Obligation is a monetary amount owed by an owner (a member, or a campaign for
// pooled donations), tracked from outstanding to settled.
type Obligation struct {
	ObligationID string           `json:"obligationID"`
	Kind         ObligationKind   `json:"kind"`
	OwnerID      string           `json:"ownerID"`
	Amount       decimal.Decimal  `json:"amount"`
	Status       ObligationStatus `json:"status"`
	Settlement   *Settlement      `json:"settlement,omitempty"` // Non-nil iff Status is the settled status
	ObligationDetails
	AuditFields
}

// IsSettled reports whether the obligation has reached its policy's settled state.
func (o Obligation) IsSettled(p ObligationPolicy) bool {
	return o.Status == p.SettledStatus
}

// CheckConsistency verifies the settlement-metadata invariant for o under p.
func (o Obligation) CheckConsistency(p ObligationPolicy) error {
	if o.Kind != p.Kind {
		return fmt.Errorf("obligation kind %s does not match policy %s", o.Kind, p.Kind)
	}
	if !p.IsKnownStatus(o.Status) {
		return fmt.Errorf("unknown status %q for %s", o.Status, p.Kind)
	}
	if o.IsSettled(p) != (o.Settlement != nil) {
		return fmt.Errorf("settlement metadata must be present exactly when status is %s", p.SettledStatus)
	}
	return nil
}
