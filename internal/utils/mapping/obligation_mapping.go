package mapping

import (
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/SscSPs/membership_ledger/internal/models"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ToModelObligation converts a domain Obligation to a row model.
func ToModelObligation(d domain.Obligation) models.Obligation {
	m := models.Obligation{
		ObligationID: d.ObligationID,
		OwnerID:      d.OwnerID,
		Amount:       d.Amount,
		Status:       string(d.Status),
		Period:       strPtr(d.Period),
		DueDate:      d.DueDate,
		CampaignName: strPtr(d.CampaignName),
		CampaignDate: d.CampaignDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.TargetAmount != nil {
		m.TargetAmount = decimal.NullDecimal{Decimal: *d.TargetAmount, Valid: true}
	}
	if s := d.Settlement; s != nil {
		settledAt := s.SettledAt
		method := string(s.Method)
		m.SettledAt = &settledAt
		m.SettlementMethod = &method
		m.WalletID = strPtr(s.WalletID)
		m.SettlementNote = &s.Note
	}
	return m
}

// ToDomainObligation converts a row model of the given kind to a domain Obligation.
// Settlement metadata is populated when the row carries a settlement date.
func ToDomainObligation(kind domain.ObligationKind, m models.Obligation) domain.Obligation {
	d := domain.Obligation{
		ObligationID: m.ObligationID,
		Kind:         kind,
		OwnerID:      m.OwnerID,
		Amount:       m.Amount,
		Status:       domain.ObligationStatus(m.Status),
		ObligationDetails: domain.ObligationDetails{
			Period:       strVal(m.Period),
			DueDate:      m.DueDate,
			CampaignName: strVal(m.CampaignName),
			CampaignDate: m.CampaignDate,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.TargetAmount.Valid {
		target := m.TargetAmount.Decimal
		d.TargetAmount = &target
	}
	if m.SettledAt != nil {
		d.Settlement = &domain.Settlement{
			SettledAt: *m.SettledAt,
			Method:    domain.SettlementMethod(strVal(m.SettlementMethod)),
			WalletID:  strVal(m.WalletID),
			Note:      strVal(m.SettlementNote),
		}
	}
	return d
}

// ToDomainObligationSlice converts a slice of row models to domain Obligations.
func ToDomainObligationSlice(kind domain.ObligationKind, ms []models.Obligation) []domain.Obligation {
	ds := make([]domain.Obligation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainObligation(kind, m)
	}
	return ds
}
